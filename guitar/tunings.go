// ABOUTME: Built-in tuning presets for common fretted instruments
// ABOUTME: Pitches are MIDI-style semitone indices, low string first

package guitar

// Tunings maps a preset name to its open-string pitches, low to high.
var Tunings = map[string][]Pitch{
	"standard6": {40, 45, 50, 55, 59, 64},
	"dropD":     {38, 45, 50, 55, 59, 64},
	"baritone":  {35, 40, 45, 50, 54, 59},
	"standard7": {35, 40, 45, 50, 55, 59, 64},
	"standard8": {30, 35, 40, 45, 50, 55, 59, 64},
}

// Acoustic geometry defaults used throughout the end-to-end test scenarios
// and as the config package's seed values.
const (
	DefaultScaleLength     = 620.0
	DefaultFirstFretWidth  = 38.0
	DefaultNutWidth        = 44.45
	DefaultBridgeWidth     = 58.7375
)
