// ABOUTME: Fretboard geometry and candidate finger-placement enumeration
// ABOUTME: Builds the dense (numFrets+1)*numStrings position grid and walks it to find chord tones

// Package guitar models the physical fretboard a fingering search runs
// against: an immutable grid of fret positions with real 2-D coordinates,
// and the enumeration of candidate finger placements for a chord mask.
package guitar

import (
	"fmt"
	"math"

	"fretwork/chord"
)

// Finger identity sentinels. 0..3 identify index/middle/ring/pinky.
const (
	FingerUndef = -2
	FingerMute  = -1
)

// Fret-spacing constants for 12-tone-equal-temperament fret geometry.
// Preserved exactly from the reference implementation; do not "simplify".
const (
	distA = -18.876616839465076
	distB = -0.057762265046662105
)

// Pitch is a MIDI-style semitone index. Pitch class is Pitch % 12.
type Pitch int

// Class reduces p to a pitch class in [0,11].
func (p Pitch) Class() int {
	return int(((p % 12) + 12) % 12)
}

// FretPosition is one cell of the fretboard grid.
type FretPosition struct {
	FretID       int
	String       int
	Fret         int
	X, Y         float64
	Pitch        Pitch
	FingerNumber int
}

// Mute converts a FretPosition in place to a muted string: fret resets to
// 0, pitch is reduced by the old fret offset (back to the open pitch), and
// FingerNumber becomes FingerMute.
func (fp *FretPosition) Mute() {
	fp.Pitch -= Pitch(fp.Fret)
	fp.Fret = 0
	fp.FingerNumber = FingerMute
}

// FingerPlacement is a candidate left-hand placement: a fret position plus
// the set of pitch classes it would sound (a single note, or for a barre,
// every pitch class that finger would stop across the strings it covers).
type FingerPlacement struct {
	Position     FretPosition
	NotesSounded chord.Mask
	IsBarre      bool
}

// Guitar is an immutable fretboard model: tuning, scale geometry, and the
// derived dense grid of fret positions.
type Guitar struct {
	tuning       []Pitch
	numFrets     int
	scaleLength  float64
	nutWidth     float64
	bridgeWidth  float64
	firstFretW   float64
	fretboard    []FretPosition
}

// New builds a Guitar from its physical parameters. tuning gives the open
// pitch of each string low-to-high; numFrets, scaleLength, nutWidth,
// bridgeWidth, and firstFretWidth describe the instrument's geometry.
func New(tuning []Pitch, numFrets int, nutWidth, bridgeWidth, firstFretWidth, scaleLength float64) (*Guitar, error) {
	if len(tuning) == 0 {
		return nil, fmt.Errorf("guitar: tuning must have at least one string")
	}

	if numFrets < 0 {
		return nil, fmt.Errorf("guitar: numFrets must be non-negative, got %d", numFrets)
	}

	g := &Guitar{
		tuning:      append([]Pitch(nil), tuning...),
		numFrets:    numFrets,
		scaleLength: scaleLength,
		nutWidth:    nutWidth,
		bridgeWidth: bridgeWidth,
		firstFretW:  firstFretWidth,
	}
	g.buildFretboard()

	return g, nil
}

// NumStrings returns the number of strings on the instrument.
func (g *Guitar) NumStrings() int {
	return len(g.tuning)
}

// NumFrets returns the highest fret number on the instrument.
func (g *Guitar) NumFrets() int {
	return g.numFrets
}

// OpenPitch returns the open pitch of the given string.
func (g *Guitar) OpenPitch(string int) Pitch {
	return g.tuning[string]
}

// fretDistance implements D(a,m,n) from the fret-spacing formula: the
// physical distance (in the same units as scaleLength) between fret m and
// fret n given a first-fret width a.
func fretDistance(a float64, m, n int) float64 {
	return distA * a * (math.Exp(distB*float64(n)) - math.Exp(distB*float64(m)))
}

// buildFretboard populates the dense row-major-by-fret grid of positions.
func (g *Guitar) buildFretboard() {
	s := g.NumStrings()
	g.fretboard = make([]FretPosition, (g.numFrets+1)*s)

	nutSpacing := 0.0
	bridgeSpacing := 0.0

	if s > 1 {
		nutSpacing = g.nutWidth / float64(s-1)
		bridgeSpacing = g.bridgeWidth / float64(s-1)
	}

	for fret := 0; fret <= g.numFrets; fret++ {
		x := g.scaleLength - fretDistance(g.firstFretW, 0, fret)

		// t is the fraction of the way from the nut (t=0) to the bridge (t=1).
		t := 0.0
		if g.scaleLength != 0 {
			t = (g.scaleLength - x) / g.scaleLength
		}

		spacing := nutSpacing + (bridgeSpacing-nutSpacing)*t

		for str := 0; str < s; str++ {
			id := fret*s + str
			g.fretboard[id] = FretPosition{
				FretID:       id,
				String:       str,
				Fret:         fret,
				X:            x,
				Y:            float64(str) * spacing,
				Pitch:        g.tuning[str] + Pitch(fret),
				FingerNumber: FingerUndef,
			}
		}
	}
}

// PositionAt returns the fret position for the given string and fret.
func (g *Guitar) PositionAt(string, fret int) FretPosition {
	return g.fretboard[fret*g.NumStrings()+string]
}

// Distance returns the Euclidean distance, in physical fretboard units,
// between two fret positions.
func Distance(a, b FretPosition) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y

	return math.Sqrt(dx*dx + dy*dy)
}

// FindPositions walks the fretboard from the highest fret id down to the
// lowest, collecting a FingerPlacement for every cell whose pitch class
// belongs to mask. When barreEnabled and a matching cell shares a fretted
// (fret>0) fret with the previous matching cell, that cell is emitted
// twice: as a single-note placement and as a barre placement whose
// NotesSounded is the union of pitch classes matched so far at that fret.
// The result ascends by fret id.
func (g *Guitar) FindPositions(mask chord.Mask, barreEnabled bool) []FingerPlacement {
	s := g.NumStrings()
	maxID := (g.numFrets+1)*s - 1

	var reversed []FingerPlacement

	currentFret := -1
	var currentNotes chord.Mask

	for id := maxID; id >= 0; id-- {
		pos := g.fretboard[id]
		pc := pos.Pitch.Class()

		if !mask.Has(pc) {
			continue
		}

		pcMask := chord.Mask(1 << uint(pc))

		if pos.Fret == currentFret && pos.Fret > 0 && barreEnabled {
			currentNotes |= pcMask

			reversed = append(reversed,
				FingerPlacement{Position: pos, NotesSounded: pcMask, IsBarre: false},
				FingerPlacement{Position: pos, NotesSounded: currentNotes, IsBarre: true},
			)

			continue
		}

		currentFret = pos.Fret
		currentNotes = pcMask

		reversed = append(reversed, FingerPlacement{Position: pos, NotesSounded: pcMask, IsBarre: false})
	}

	result := make([]FingerPlacement, len(reversed))
	for i, p := range reversed {
		result[len(reversed)-1-i] = p
	}

	return result
}

// OpenStringMask returns the OR of open-string pitch classes for strings
// whose open pitch is at or above tonicPitch, restricted to pitch classes
// present in mask. It models the notes that ring from unfretted strings
// once the hand has placed the tonic.
func (g *Guitar) OpenStringMask(mask chord.Mask, tonicPitch Pitch) chord.Mask {
	var open chord.Mask

	for _, openPitch := range g.tuning {
		if openPitch >= tonicPitch {
			open |= chord.Mask(1) << uint(openPitch.Class())
		}
	}

	return open & mask
}
