// ABOUTME: Public entry point wiring Guitar, HandModel, Rater, and Searcher from an EngineConfig
// ABOUTME: Glue only: construction, chord-name/tuning-name lookup, and result sorting

// Package fretwork is a chord-fingering search and scoring engine: given
// a generic chord, a key, a guitar model, and a hand model, it enumerates
// playable fingerings and ranks them with a learned heuristic.
package fretwork

import (
	"fmt"

	"fretwork/chord"
	"fretwork/config"
	"fretwork/fingering"
	"fretwork/guitar"
	"fretwork/hand"
	"fretwork/rater"
	"fretwork/search"
)

// Engine bundles a constructed Guitar, HandModel, Rater, and Searcher,
// built once per session and shared read-only across searches.
type Engine struct {
	Guitar   *guitar.Guitar
	Hand     *hand.HandModel
	Rater    rater.Model
	Searcher *search.Searcher
	cfg      config.EngineConfig
}

// NewEngine builds an Engine from an EngineConfig. The tuning named in
// cfg.Guitar.Tuning must be a key of guitar.Tunings.
func NewEngine(cfg config.EngineConfig) (*Engine, error) {
	tuning, ok := guitar.Tunings[cfg.Guitar.Tuning]
	if !ok {
		return nil, fmt.Errorf("fretwork: unknown tuning %q", cfg.Guitar.Tuning)
	}

	g, err := guitar.New(tuning, cfg.Guitar.NumFrets, cfg.Guitar.NutWidth, cfg.Guitar.BridgeWidth, cfg.Guitar.FirstFretWidth, cfg.Guitar.ScaleLength)
	if err != nil {
		return nil, err
	}

	h, err := hand.New(cfg.Hand.EnabledFingers, cfg.Hand.MinPairs, cfg.Hand.MaxPairs)
	if err != nil {
		return nil, err
	}

	r := rater.FromCoefficients(cfg.Rater.Coefficients, cfg.Rater.Intercept)

	searchCfg := search.Config{
		MaxMutes:     cfg.Search.MaxMutes,
		MinScore:     cfg.Search.MinScore,
		MaxBarre:     cfg.Search.MaxBarre,
		BarreEnabled: cfg.Search.BarreEnabled,
	}

	s, err := search.New(g, h, r, searchCfg)
	if err != nil {
		return nil, err
	}

	return &Engine{Guitar: g, Hand: h, Rater: r, Searcher: s, cfg: cfg}, nil
}

// Generate looks up chordName in the built-in catalog and runs the
// search at the given key, returning fingerings sorted descending by
// score. An unknown chord name is returned as an error, not as an empty
// result.
func (e *Engine) Generate(chordName string, key int) ([]*fingering.Fingering, error) {
	mask, ok := chord.Catalog[chordName]
	if !ok {
		return nil, fmt.Errorf("fretwork: unknown chord %q", chordName)
	}

	results, err := e.Searcher.Generate(mask, key, e.cfg.Search.NumThreads)
	if err != nil {
		return nil, err
	}

	search.SortDescendingByScore(results)

	return results, nil
}
