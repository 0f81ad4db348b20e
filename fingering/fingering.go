// ABOUTME: Materializes a selected set of finger placements into a full per-string fingering
// ABOUTME: Handles muting, unison counting, barre-register extension, and the 8 category scores

// Package fingering turns a set of selected FingerPlacements into a
// concrete, playable Fingering: one fret position per string, with
// muting applied and the eight heuristic category scores computed.
package fingering

import (
	"fretwork/chord"
	"fretwork/guitar"
	"fretwork/hand"
)

// NumScores is the number of heuristic category scores a Fingering carries.
const NumScores = 8

// Fingering is a fully materialized, playable chord shape.
type Fingering struct {
	Positions  []guitar.FretPosition  // one per string, low to high
	Placements []guitar.FingerPlacement // the k selected placements, sorted by string
	ChordMask  chord.Mask               // pitch classes actually sounded
	Tonic      guitar.Pitch
	Scores     [NumScores]float64
	Score      float64 // set by the rater; zero until scored
	MuteCount  int
	MinFret    int
	MaxFret    int
	BarreCount int
	Rating     *float64 // user rating, if this fingering came from a training set
}

// Build materializes a Fingering from a sorted-by-string slice of selected
// placements. assignmentID/comfortScore come from HandModel.FindBestAssignment
// applied to placements; numEnabledFingers is hand.NumFingers(); barreCount
// is the number of barre placements among the selection. Returns
// (nil, false) if the materialized fingering does not sound exactly
// requestedChord.
func Build(
	g *guitar.Guitar,
	placements []guitar.FingerPlacement,
	requestedChord chord.Mask,
	tonicPitch guitar.Pitch,
	assignmentID int,
	comfortScore float64,
	numEnabledFingers int,
	barreCount int,
) (*Fingering, bool) {
	numStrings := g.NumStrings()
	perString := make([]guitar.FretPosition, numStrings)

	slotForString := make(map[int]int, len(placements))
	for slot, p := range placements {
		slotForString[p.Position.String] = slot
	}

	minFret, maxFret := 0, 0
	for i, p := range placements {
		if i == 0 || p.Position.Fret < minFret {
			minFret = p.Position.Fret
		}

		if i == 0 || p.Position.Fret > maxFret {
			maxFret = p.Position.Fret
		}
	}

	openFret := 0
	barreFinger := guitar.FingerUndef

	for i := 0; i < numStrings; i++ {
		slot, hasPlacement := slotForString[i]
		if !hasPlacement {
			pos := g.PositionAt(i, openFret)
			pos.FingerNumber = barreFinger
			perString[i] = pos

			continue
		}

		p := placements[slot]
		pos := p.Position
		pos.FingerNumber = hand.FingerAt(assignmentID, slot)
		perString[i] = pos

		if p.IsBarre && p.Position.Fret > openFret {
			openFret = p.Position.Fret
			barreFinger = pos.FingerNumber
		}
	}

	var producedChord chord.Mask

	// muteCount starts at 0 (see spec.md open question (a): a naive
	// port that leaves this uninitialized can go negative once
	// lowestSoundingString is subtracted below).
	muteCount := 0
	numUnison := 0
	lowestSoundingString := -1
	seenPitches := make(map[guitar.Pitch]bool, numStrings)

	for i := 0; i < numStrings; i++ {
		pos := &perString[i]
		pc := pos.Pitch.Class()

		if pos.Pitch < tonicPitch || !requestedChord.Has(pc) {
			pos.Mute()

			muteCount++

			continue
		}

		producedChord |= chord.Mask(1) << uint(pc)

		if seenPitches[pos.Pitch] {
			numUnison++
		}

		seenPitches[pos.Pitch] = true

		if lowestSoundingString == -1 {
			lowestSoundingString = i
		}
	}

	if producedChord != requestedChord {
		return nil, false
	}

	if lowestSoundingString == -1 {
		lowestSoundingString = 0
	}

	// Every string below the lowest sounding string is muted by
	// definition, so this can never go negative.
	muteCount -= lowestSoundingString

	f := &Fingering{
		Positions:  perString,
		Placements: placements,
		ChordMask:  producedChord,
		Tonic:      tonicPitch,
		MuteCount:  muteCount,
		MinFret:    minFret,
		MaxFret:    maxFret,
		BarreCount: barreCount,
	}
	f.Scores = categoryScores(f, numStrings, lowestSoundingString, numUnison, len(seenPitches), comfortScore, numEnabledFingers, len(placements))

	return f, true
}

// categoryScores computes the 8 heuristic components from spec.md §4.5.
func categoryScores(f *Fingering, numStrings, lowestSoundingString, numUnison, distinctPitches int, comfortScore float64, numEnabledFingers, k int) [NumScores]float64 {
	var s [NumScores]float64

	s[0] = 1 / (1 + float64(numUnison))
	muteTerm := float64(f.MuteCount) + 1
	s[1] = 1 / (muteTerm * muteTerm)
	s[2] = comfortScore
	s[3] = float64(numStrings-lowestSoundingString) / float64(numStrings)

	if numEnabledFingers > 0 {
		s[4] = float64(numEnabledFingers-k) / float64(numEnabledFingers)
	}

	s[5] = 1 / float64(f.MaxFret-f.MinFret+1)

	if distinctPitches > 0 {
		s[6] = 1 - 1/float64(distinctPitches)
	}

	s[7] = 1 / (1 + float64(f.BarreCount))

	return s
}
