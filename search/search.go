// ABOUTME: Combinatorial fingering search: per-tonic enumeration, candidate acceptance, dispatch
// ABOUTME: One pool task per tonic; each task enumerates placements independently and purely

// Package search enumerates playable fingerings for a chord at a key,
// dispatching one worker-pool task per candidate tonic.
package search

import (
	"fmt"
	"sort"
	"sync"

	"fretwork/chord"
	"fretwork/fingering"
	"fretwork/guitar"
	"fretwork/hand"
	"fretwork/pool"
	"fretwork/rater"
)

// Config bounds which candidates Generate accepts.
type Config struct {
	MaxMutes     int
	MinScore     float64
	MaxBarre     int
	BarreEnabled bool
}

// Searcher ties together a Guitar, a HandModel, and a Rater to generate
// and score fingerings for arbitrary chords and keys.
type Searcher struct {
	guitar *guitar.Guitar
	hand   *hand.HandModel
	rater  rater.Model
	cfg    Config
}

// New builds a Searcher. guitar and hand must be non-nil.
func New(g *guitar.Guitar, h *hand.HandModel, r rater.Model, cfg Config) (*Searcher, error) {
	if g == nil {
		return nil, fmt.Errorf("search: guitar must not be nil")
	}

	if h == nil {
		return nil, fmt.Errorf("search: hand model must not be nil")
	}

	return &Searcher{guitar: g, hand: h, rater: r, cfg: cfg}, nil
}

// Generate runs the full search for chordMask shifted by key, dispatching
// one task per candidate tonic across numThreads workers (numThreads <= 0
// uses runtime.NumCPU()). Each task's results are kept in that tonic's
// own slot and concatenated in tonic order (ascending fret id) once all
// tasks finish, whatever order the tasks complete in; a single-threaded
// run (numThreads == 1) is fully deterministic.
// An empty chord mask yields an empty, non-error result.
func (s *Searcher) Generate(chordMask chord.Mask, key int, numThreads int) ([]*fingering.Fingering, error) {
	if err := chord.ValidateKey(key); err != nil {
		return nil, err
	}

	shifted := chordMask.Shift(key)

	fps := s.guitar.FindPositions(shifted, s.cfg.BarreEnabled)

	var tonics, fPos []guitar.FingerPlacement

	for _, p := range fps {
		if p.Position.Pitch.Class() == key {
			tonics = append(tonics, p)
		}

		if p.Position.Fret > 0 {
			fPos = append(fPos, p)
		}
	}

	if len(tonics) == 0 {
		return nil, nil
	}

	bufSize := len(tonics)
	workerPool := pool.NewWorkerPool(numThreads, bufSize)

	resultsByTonic := make([][]*fingering.Fingering, len(tonics))

	var wg sync.WaitGroup

	for i, tonic := range tonics {
		i, tonic := i, tonic

		wg.Add(1)
		workerPool.Submit(func() {
			defer wg.Done()
			resultsByTonic[i] = s.searchTonic(tonic, fPos, shifted)
		})
	}

	workerPool.Wait()
	workerPool.Close()
	wg.Wait()

	var results []*fingering.Fingering
	for _, r := range resultsByTonic {
		results = append(results, r...)
	}

	return results, nil
}

// searchTonic enumerates every accepted fingering rooted at tonic. It is
// pure over its arguments and shares no mutable state with other tasks.
func (s *Searcher) searchTonic(tonic guitar.FingerPlacement, fPos []guitar.FingerPlacement, chordMask chord.Mask) []*fingering.Fingering {
	maxSearchDist := s.hand.MaxSearchDist()
	numFingers := s.hand.NumFingers()

	var results []*fingering.Fingering

	if tonic.Position.Fret == 0 {
		list := tonicFilterOpen(fPos, tonic)
		seedMask := s.guitar.OpenStringMask(chordMask, tonic.Position.Pitch)

		s.enumerate(tonic, list, nil, seedMask, 0, chordMask, maxSearchDist, numFingers, &results)

		return results
	}

	list := tonicFilterFretted(fPos, tonic, maxSearchDist)

	barreCount := 0
	if tonic.IsBarre {
		barreCount = 1
	}

	s.enumerate(tonic, list, []guitar.FingerPlacement{tonic}, tonic.NotesSounded, barreCount, chordMask, maxSearchDist, numFingers, &results)

	return results
}

// enumerate performs the per-depth nested selection described in
// spec.md §4.7: at every node (not just leaves) a candidate whose
// accumulated note mask matches the requested chord is tried, and
// recursion continues using filter1's narrowing of the remaining list
// until numFingers placements are selected.
func (s *Searcher) enumerate(
	tonic guitar.FingerPlacement,
	list []guitar.FingerPlacement,
	selected []guitar.FingerPlacement,
	noteMask chord.Mask,
	barreCount int,
	chordMask chord.Mask,
	maxSearchDist float64,
	numFingers int,
	results *[]*fingering.Fingering,
) {
	if noteMask == chordMask {
		if f, ok := s.tryCandidate(tonic, chordMask, selected, barreCount); ok {
			*results = append(*results, f)
		}
	}

	if len(selected) >= numFingers {
		return
	}

	for i, p := range list {
		barreBudgetRemains := s.cfg.MaxBarre - barreCount
		if p.IsBarre && barreBudgetRemains <= 0 {
			continue
		}

		nextSelected := make([]guitar.FingerPlacement, len(selected), len(selected)+1)
		copy(nextSelected, selected)
		nextSelected = append(nextSelected, p)

		nextBarreCount := barreCount
		if p.IsBarre {
			nextBarreCount++
		}

		canBarre := s.cfg.MaxBarre-nextBarreCount > 0
		nextList := filter1(list, i, maxSearchDist, canBarre)

		s.enumerate(tonic, nextList, nextSelected, noteMask|p.NotesSounded, nextBarreCount, chordMask, maxSearchDist, numFingers, results)
	}
}

// tryCandidate materializes and scores one candidate placement set per
// spec.md §4.7: best hand assignment, fingering construction, rating,
// and threshold acceptance.
func (s *Searcher) tryCandidate(tonic guitar.FingerPlacement, chordMask chord.Mask, selected []guitar.FingerPlacement, barreCount int) (*fingering.Fingering, bool) {
	ordered := make([]guitar.FingerPlacement, len(selected))
	copy(ordered, selected)
	hand.SortByString(ordered)

	comfortScore, assignmentID := s.hand.FindBestAssignment(ordered)
	if len(ordered) > 0 && assignmentID == hand.InvalidAssignment {
		return nil, false
	}

	f, ok := fingering.Build(s.guitar, ordered, chordMask, tonic.Position.Pitch, assignmentID, comfortScore, s.hand.NumFingers(), barreCount)
	if !ok {
		return nil, false
	}

	s.rater.ScoreFingering(f)

	if f.MuteCount > s.cfg.MaxMutes || f.Score < s.cfg.MinScore {
		return nil, false
	}

	return f, true
}

// SortDescendingByScore sorts fs in place, highest score first.
func SortDescendingByScore(fs []*fingering.Fingering) {
	sort.SliceStable(fs, func(i, j int) bool {
		return fs[i].Score > fs[j].Score
	})
}
