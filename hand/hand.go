// ABOUTME: Anatomical hand model: pairwise reach tables, comfort scoring, finger assignment
// ABOUTME: findBestAssignment searches the 15 canonical ascending finger subsets for the best-scoring one

// Package hand models the physical constraints of a fretting hand: which
// fingers are usable, how far apart a pair of fingers can comfortably
// stretch, and which of the 15 canonical non-crossing finger assignments
// best explains a set of selected fret placements.
package hand

import (
	"fmt"
	"sort"

	"fretwork/guitar"
)

// InvalidAssignment is returned when no enabled-finger subset of the
// required cardinality exists.
const InvalidAssignment = 15

// assignments lists the 15 canonical ascending non-crossing subsets of
// {0,1,2,3}, grouped by cardinality: the four 1-element subsets, the six
// 2-element subsets, the four 3-element subsets, then the single
// 4-element subset. Index 15 (InvalidAssignment) has no table entry.
var assignments = [15][]int{
	{0}, {1}, {2}, {3},
	{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
	{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3},
	{0, 1, 2, 3},
}

// FingerAt returns the finger number assigned to slot s by the given
// canonical assignment id.
func FingerAt(assignmentID, slot int) int {
	return assignments[assignmentID][slot]
}

// pairIndex maps a (lower, higher) finger pair, lower < higher, to its
// position in the 6-element pair arrays HandModel.New accepts, in the
// order {(0,1),(0,2),(0,3),(1,2),(1,3),(2,3)}.
var pairIndex = [4][4]int{
	{-1, 0, 1, 2},
	{0, -1, 3, 4},
	{1, 3, -1, 5},
	{2, 4, 5, -1},
}

// HandModel holds the pairwise reach tables and enabled-finger set for a
// fretting hand.
type HandModel struct {
	enabled       [4]bool
	minDist       [4][4]float64
	maxDist       [4][4]float64
	numFingers    int
	maxSearchDist float64
}

// New builds a HandModel. enabledFingers is a 4-bit mask (bit i = finger
// i usable). minPairs and maxPairs give the minimum and maximum
// comfortable span for each of the six finger pairs, in the order
// {(1,2),(1,3),(1,4),(2,3),(2,4),(3,4)} using 1-based finger numbers,
// i.e. pairIndex order using 0-based finger numbers.
func New(enabledFingers uint8, minPairs, maxPairs [6]float64) (*HandModel, error) {
	h := &HandModel{}

	numEnabled := 0

	for f := 0; f < 4; f++ {
		if enabledFingers&(1<<uint(f)) != 0 {
			h.enabled[f] = true
			numEnabled++
		}
	}

	if numEnabled == 0 {
		return nil, fmt.Errorf("hand: at least one finger must be enabled")
	}

	h.numFingers = numEnabled

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}

			idx := pairIndex[i][j]
			if minPairs[idx] > maxPairs[idx] {
				return nil, fmt.Errorf("hand: min distance exceeds max for finger pair (%d,%d)", i, j)
			}

			h.minDist[i][j] = minPairs[idx]
			h.maxDist[i][j] = maxPairs[idx]
		}
	}

	for i := 0; i < 4; i++ {
		if !h.enabled[i] {
			continue
		}

		for j := i + 1; j < 4; j++ {
			if !h.enabled[j] || h.maxDist[i][j] <= h.maxSearchDist {
				continue
			}

			h.maxSearchDist = h.maxDist[i][j]
		}
	}

	return h, nil
}

// NumFingers returns the number of enabled fingers.
func (h *HandModel) NumFingers() int {
	return h.numFingers
}

// MaxSearchDist returns the largest comfortable span across all enabled
// finger pairs; searches never need to consider placements farther apart
// than this.
func (h *HandModel) MaxSearchDist() float64 {
	return h.maxSearchDist
}

// Enabled reports whether finger f (0..3) is usable by this hand.
func (h *HandModel) Enabled(f int) bool {
	return h.enabled[f]
}

// comfort maps a finger-pair distance d, given the pair's [minD,maxD]
// comfortable span, to a score of at most 1: 1 between the 0.99*minD
// floor and an asymmetric 7*b/12 shoulder (b = 1.01*maxD), decreasing
// without a lower bound below the floor and above the shoulder; the
// shoulder tolerates slight cramping more than overstretch.
func comfort(d, minD, maxD float64) float64 {
	a := 0.99 * minD
	b := 1.01 * maxD
	l := 7 * b / 12

	switch {
	case d < a:
		diff := d - a

		return 1 + diff*diff*diff
	case d <= l:
		return 1
	default:
		over := (d - l) / l

		return 1 - over*over
	}
}

// FindBestAssignment scores every canonical ascending subset of enabled
// fingers with cardinality len(placements) and returns the best comfort
// score and its assignment id. placements must already be sorted by
// string. Returns (0, InvalidAssignment) if no enabled subset of the
// right size exists, and (1, InvalidAssignment) for an empty placements
// slice.
func (h *HandModel) FindBestAssignment(placements []guitar.FingerPlacement) (float64, int) {
	k := len(placements)
	if k == 0 {
		return 1, InvalidAssignment
	}

	bestScore := -1.0
	bestID := InvalidAssignment

	for id, subset := range assignments {
		if len(subset) != k {
			continue
		}

		if !allEnabled(h, subset) {
			continue
		}

		score := scoreAssignment(h, placements, subset)
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}

	if bestID == InvalidAssignment {
		return 0, InvalidAssignment
	}

	return bestScore, bestID
}

func allEnabled(h *HandModel, subset []int) bool {
	for _, f := range subset {
		if !h.enabled[f] {
			return false
		}
	}

	return true
}

// scoreAssignment computes the fingering comfort score (§4.4) for
// placements sorted by string under the given finger subset.
func scoreAssignment(h *HandModel, placements []guitar.FingerPlacement, subset []int) float64 {
	k := len(placements)

	pairs := 0
	penaltySum := 0.0

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			pairs++

			fi, fj := subset[i], subset[j]
			d := guitar.Distance(placements[i].Position, placements[j].Position)
			s := comfort(d, h.minDist[fi][fj], h.maxDist[fi][fj])
			penaltySum += 1 - s
		}
	}

	denom := pairs
	if denom < 1 {
		denom = 1
	}

	return 1 - penaltySum/float64(denom)
}

// SortByString sorts placements ascending by string number in place, the
// order FindBestAssignment and the fingering builder both require.
func SortByString(placements []guitar.FingerPlacement) {
	sort.Slice(placements, func(i, j int) bool {
		return placements[i].Position.String < placements[j].Position.String
	})
}
