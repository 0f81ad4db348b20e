// ABOUTME: Tests for the combinatorial fingering searcher
// ABOUTME: Exercises spec.md §8's testable properties and the literal E-major-open scenario

package search

import (
	"testing"

	"fretwork/chord"
	"fretwork/fingering"
	"fretwork/guitar"
	"fretwork/hand"
	"fretwork/rater"
)

// permissiveHand returns a hand model with generous reach bounds so that
// reachability pruning never rejects a candidate, isolating the tests
// from the hand model's own thresholds.
func permissiveHand(t *testing.T) *hand.HandModel {
	t.Helper()

	var minP, maxP [6]float64
	for i := range minP {
		minP[i] = 0
		maxP[i] = 1000
	}

	h, err := hand.New(0b1111, minP, maxP)
	if err != nil {
		t.Fatalf("hand.New() error = %v", err)
	}

	return h
}

func newTestSearcher(t *testing.T, h *hand.HandModel, cfg Config) (*Searcher, *guitar.Guitar) {
	t.Helper()

	g, err := guitar.New(guitar.Tunings["standard6"], 12, guitar.DefaultNutWidth, guitar.DefaultBridgeWidth, guitar.DefaultFirstFretWidth, guitar.DefaultScaleLength)
	if err != nil {
		t.Fatalf("guitar.New() error = %v", err)
	}

	s, err := New(g, h, rater.Default(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return s, g
}

func permissiveConfig() Config {
	return Config{MaxMutes: 6, MinScore: -1000, MaxBarre: 4, BarreEnabled: false}
}

func TestGenerate_EmptyChordReturnsEmptyNoError(t *testing.T) {
	s, _ := newTestSearcher(t, permissiveHand(t), permissiveConfig())

	results, err := s.Generate(chord.Mask(0), 0, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(results) != 0 {
		t.Errorf("Generate(empty chord) = %d results, want 0", len(results))
	}
}

func TestGenerate_RejectsInvalidKey(t *testing.T) {
	s, _ := newTestSearcher(t, permissiveHand(t), permissiveConfig())

	if _, err := s.Generate(chord.Catalog["maj"], 12, 1); err == nil {
		t.Error("Generate() should reject a key outside [0,11]")
	}
}

// TestGenerate_AllResultsSoundExactlyTheRequestedChord is testable
// property 1: the OR of pitch-class bits from non-muted strings must
// equal chordToKey(chord, key) for every returned Fingering.
func TestGenerate_AllResultsSoundExactlyTheRequestedChord(t *testing.T) {
	s, _ := newTestSearcher(t, permissiveHand(t), permissiveConfig())

	want := chord.Catalog["maj"].Shift(4)

	results, err := s.Generate(chord.Catalog["maj"], 4, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(results) == 0 {
		t.Fatal("expected at least one fingering for E major open position")
	}

	for _, f := range results {
		if f.ChordMask != want {
			t.Errorf("fingering sounds %012b, want %012b", f.ChordMask, want)
		}
	}
}

// TestGenerate_RespectsMaxSearchDistance is testable property 2: every
// pair of selected placements must be within hand.MaxSearchDist().
func TestGenerate_RespectsMaxSearchDistance(t *testing.T) {
	var minP, maxP [6]float64
	for i := range minP {
		minP[i] = 0
		maxP[i] = 30 // a tight, realistic span in fretboard units
	}

	h, err := hand.New(0b1111, minP, maxP)
	if err != nil {
		t.Fatalf("hand.New() error = %v", err)
	}

	s, _ := newTestSearcher(t, h, permissiveConfig())

	results, err := s.Generate(chord.Catalog["maj"], 4, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, f := range results {
		for i := 0; i < len(f.Placements); i++ {
			for j := i + 1; j < len(f.Placements); j++ {
				d := guitar.Distance(f.Placements[i].Position, f.Placements[j].Position)
				if d > h.MaxSearchDist() {
					t.Errorf("placements %d,%d are %f apart, exceeds maxSearchDist %f", i, j, d, h.MaxSearchDist())
				}
			}
		}
	}
}

// TestGenerate_RespectsMaxBarre is testable property 3 (barre count bound).
func TestGenerate_RespectsMaxBarre(t *testing.T) {
	cfg := permissiveConfig()
	cfg.BarreEnabled = true
	cfg.MaxBarre = 1

	s, _ := newTestSearcher(t, permissiveHand(t), cfg)

	results, err := s.Generate(chord.Catalog["maj"], 5, 1) // F major: barre-heavy shape
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, f := range results {
		if f.BarreCount > cfg.MaxBarre {
			t.Errorf("BarreCount = %d, exceeds MaxBarre %d", f.BarreCount, cfg.MaxBarre)
		}
	}
}

// TestGenerate_ScoreBoundsWithDefaultCoefficients is testable property 4.
func TestGenerate_ScoreBoundsWithDefaultCoefficients(t *testing.T) {
	s, _ := newTestSearcher(t, permissiveHand(t), permissiveConfig())

	results, err := s.Generate(chord.Catalog["min"], 9, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	sumWeights := 0.0
	for _, w := range rater.DefaultCoefficients {
		sumWeights += w
	}

	for _, f := range results {
		for _, cs := range f.Scores {
			if cs < -1e-9 || cs > 1+1e-9 {
				t.Errorf("category score %f out of [0,1]", cs)
			}
		}

		if f.Score < -1e-9 || f.Score > sumWeights+1e-9 {
			t.Errorf("Score = %f, want within [0, %f]", f.Score, sumWeights)
		}
	}
}

// TestGenerate_DeterministicSingleThreaded is testable property 6.
func TestGenerate_DeterministicSingleThreaded(t *testing.T) {
	s, _ := newTestSearcher(t, permissiveHand(t), permissiveConfig())

	a, err := s.Generate(chord.Catalog["maj"], 4, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	b, err := s.Generate(chord.Catalog["maj"], 4, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("single-threaded runs produced different result counts: %d vs %d", len(a), len(b))
	}

	for i := range a {
		if a[i].ChordMask != b[i].ChordMask || a[i].MuteCount != b[i].MuteCount || a[i].Score != b[i].Score {
			t.Errorf("result %d differs between identical single-threaded runs", i)
		}
	}
}

// TestGenerate_EMajorOpen_FindsCanonicalShape reproduces spec.md §8's
// literal E-major-open scenario: with generous hand reach and permissive
// thresholds, the unmuted, barre-free fingering (0,2,2,1,0,0) with
// muteCount 0 must appear among the results.
func TestGenerate_EMajorOpen_FindsCanonicalShape(t *testing.T) {
	s, _ := newTestSearcher(t, permissiveHand(t), permissiveConfig())

	results, err := s.Generate(chord.Catalog["maj"], 4, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wantFrets := []int{0, 2, 2, 1, 0, 0}

	found := false

	for _, f := range results {
		if f.MuteCount != 0 {
			continue
		}

		match := true

		for i, want := range wantFrets {
			if f.Positions[i].Fret != want {
				match = false
				break
			}
		}

		if match {
			found = true
			break
		}
	}

	if !found {
		t.Error("expected the canonical open E-major shape (0,2,2,1,0,0) among the results")
	}
}

// TestGenerate_PowerChordRestrictedHand_NeverExceedsEnabledFingers
// reproduces spec.md §8's power-chord-with-restricted-hand scenario: with
// only fingers {0,1} enabled, no accepted result can use more than 2
// placements.
func TestGenerate_PowerChordRestrictedHand_NeverExceedsEnabledFingers(t *testing.T) {
	var minP, maxP [6]float64
	for i := range minP {
		minP[i] = 0
		maxP[i] = 1000
	}

	h, err := hand.New(0b0011, minP, maxP) // fingers 0,1 only
	if err != nil {
		t.Fatalf("hand.New() error = %v", err)
	}

	s, _ := newTestSearcher(t, h, permissiveConfig())

	results, err := s.Generate(chord.Catalog["power"], 0, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, f := range results {
		if len(f.Placements) > h.NumFingers() {
			t.Errorf("fingering uses %d placements, exceeds %d enabled fingers", len(f.Placements), h.NumFingers())
		}
	}
}

func TestSortDescendingByScore(t *testing.T) {
	fs := []*fingering.Fingering{
		{Score: 0.2},
		{Score: 0.8},
		{Score: 0.5},
	}

	SortDescendingByScore(fs)

	for i := 1; i < len(fs); i++ {
		if fs[i].Score > fs[i-1].Score {
			t.Fatal("results not sorted descending by score")
		}
	}
}
