// ABOUTME: Configuration management for the fingering engine's TOML-persisted parameters
// ABOUTME: Handles loading/saving engine config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GuitarSpec describes the instrument geometry a Guitar is built from.
type GuitarSpec struct {
	Tuning         string  `toml:"tuning"`
	NumFrets       int     `toml:"num_frets"`
	ScaleLength    float64 `toml:"scale_length"`
	NutWidth       float64 `toml:"nut_width"`
	BridgeWidth    float64 `toml:"bridge_width"`
	FirstFretWidth float64 `toml:"first_fret_width"`
}

// HandSpec describes a fretting hand's reach and enabled fingers.
type HandSpec struct {
	EnabledFingers uint8      `toml:"enabled_fingers"`
	MinPairs       [6]float64 `toml:"min_pairs"`
	MaxPairs       [6]float64 `toml:"max_pairs"`
}

// SearchSpec bounds the fingerings the searcher accepts.
type SearchSpec struct {
	MaxMutes     int     `toml:"max_mutes"`
	MinScore     float64 `toml:"min_score"`
	MaxBarre     int     `toml:"max_barre"`
	BarreEnabled bool    `toml:"barre_enabled"`
	NumThreads   int     `toml:"num_threads"`
}

// RaterSpec holds a persisted heuristic model: 8 coefficients plus an
// intercept.
type RaterSpec struct {
	Coefficients [8]float64 `toml:"coefficients"`
	Intercept    float64    `toml:"intercept"`
}

// EngineConfig bundles every tunable parameter of the fingering engine.
type EngineConfig struct {
	Guitar GuitarSpec `toml:"guitar"`
	Hand   HandSpec   `toml:"hand"`
	Search SearchSpec `toml:"search"`
	Rater  RaterSpec  `toml:"rater"`
}

// GetConfigPath returns the default config file path: first the current
// directory, then ~/.config/fretwork/config.toml.
func GetConfigPath() string {
	if _, err := os.Stat("./fretwork.toml"); err == nil {
		return "./fretwork.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./fretwork.toml"
	}

	return filepath.Join(home, ".config", "fretwork", "config.toml")
}

// LoadEngineConfig loads an EngineConfig from a TOML file. If the file
// doesn't exist, it returns DefaultEngineConfig without error.
func LoadEngineConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultEngineConfig(), nil
		}

		return DefaultEngineConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg EngineConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultEngineConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveEngineConfig writes cfg to path as TOML, creating parent
// directories as needed.
func SaveEngineConfig(path string, cfg EngineConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg = roundConfigPrecision(cfg)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultEngineConfig returns the default engine configuration: a
// standard6 acoustic guitar, an unrestricted hand, permissive search
// thresholds, and the rater's default coefficients.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Guitar: GuitarSpec{
			Tuning:         "standard6",
			NumFrets:       12,
			ScaleLength:    620,
			NutWidth:       44.45,
			BridgeWidth:    58.7375,
			FirstFretWidth: 38,
		},
		Hand: HandSpec{
			EnabledFingers: 0b1111,
			MinPairs:       [6]float64{30, 45, 60, 25, 40, 25},
			MaxPairs:       [6]float64{90, 120, 140, 85, 110, 80},
		},
		Search: SearchSpec{
			MaxMutes:     2,
			MinScore:     0.2,
			MaxBarre:     1,
			BarreEnabled: true,
			NumThreads:   0,
		},
		Rater: RaterSpec{
			Coefficients: [8]float64{0.09, 0.28, 0.28, 0.18, 0.03, 0.03, 0.04, 0.07},
			Intercept:    0,
		},
	}
}

// roundConfigPrecision rounds every float64 field to 2 decimal places so
// repeated load/save cycles don't accumulate floating-point drift.
func roundConfigPrecision(cfg EngineConfig) EngineConfig {
	round := func(x float64) float64 {
		return float64(int(x*100+0.5)) / 100
	}

	cfg.Guitar.ScaleLength = round(cfg.Guitar.ScaleLength)
	cfg.Guitar.NutWidth = round(cfg.Guitar.NutWidth)
	cfg.Guitar.BridgeWidth = round(cfg.Guitar.BridgeWidth)
	cfg.Guitar.FirstFretWidth = round(cfg.Guitar.FirstFretWidth)

	for i := range cfg.Hand.MinPairs {
		cfg.Hand.MinPairs[i] = round(cfg.Hand.MinPairs[i])
		cfg.Hand.MaxPairs[i] = round(cfg.Hand.MaxPairs[i])
	}

	cfg.Search.MinScore = round(cfg.Search.MinScore)

	for i := range cfg.Rater.Coefficients {
		cfg.Rater.Coefficients[i] = round(cfg.Rater.Coefficients[i])
	}

	cfg.Rater.Intercept = round(cfg.Rater.Intercept)

	return cfg
}
