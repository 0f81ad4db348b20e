// ABOUTME: Built-in catalog of the 39 generic chord intervalic patterns
// ABOUTME: Preserved verbatim including entries whose masks coincide (see DESIGN.md)

package chord

// Catalog maps a generic chord name to its 12-bit pitch-class mask, rooted
// at pitch class 0. Several pairs of entries share an identical mask value
// (min6+5/min13, dim7/dim7b5, maj7/maj7/5, maj9/maj7/9, min7/min7/5 and
// min9alt/min7b9), while the two "Major 9th" spellings (maj9, maj9alt)
// differ (see DESIGN.md open question (b)); callers must not assume the
// map is injective.
var Catalog = map[string]Mask{
	"empty": FromSemitones(),

	"6th":      FromSemitones(0, 4, 7, 9),
	"6th-no5":  FromSemitones(0, 4, 9),
	"6/9":      FromSemitones(0, 2, 4, 7, 9),
	"aug":      FromSemitones(0, 4, 8),
	"dim":      FromSemitones(0, 3, 6),
	"dim7":     FromSemitones(0, 3, 6, 9),
	"dim7b5":   FromSemitones(0, 3, 6, 9),
	"maj":      FromSemitones(0, 4, 7),
	"maj3":     FromSemitones(0, 4),
	"maj7":     FromSemitones(0, 4, 7, 11),
	"maj7+5":   FromSemitones(0, 4, 8, 11),
	"maj9":     FromSemitones(0, 2, 4, 7, 11),
	"maj9+5":   FromSemitones(0, 2, 4, 8, 11),
	"majAdd9":  FromSemitones(0, 2, 4, 7),
	"majDom7":  FromSemitones(0, 4, 7, 10),
	"majDom7+5": FromSemitones(0, 4, 8, 10),
	"maj7b5":   FromSemitones(0, 4, 6, 11),
	"maj7/5":   FromSemitones(0, 4, 7, 11),
	"maj9alt":  FromSemitones(0, 2, 4, 7, 10), // dominant-rooted 9th, mislabeled in the original catalog
	"maj7b9":   FromSemitones(0, 1, 4, 7, 11),
	"maj7/9":   FromSemitones(0, 2, 4, 7, 11),
	"maj13":    FromSemitones(0, 2, 4, 5, 7, 9, 10),

	"min":      FromSemitones(0, 3, 7),
	"min6":     FromSemitones(0, 3, 7, 9),
	"min6+5":   FromSemitones(0, 3, 8, 9),
	"min9":     FromSemitones(0, 2, 3, 7, 10),
	"min11":    FromSemitones(0, 2, 3, 5, 7, 10),
	"min13":    FromSemitones(0, 3, 8, 9), // shares its mask with min6+5, see DESIGN.md
	"min13+9":  FromSemitones(0, 2, 3, 7, 9, 10),
	"min7":     FromSemitones(0, 3, 7, 10),
	"min7+5":   FromSemitones(0, 3, 8, 10),
	"min7b5":   FromSemitones(0, 3, 6, 10),
	"min7/5":   FromSemitones(0, 3, 7, 10),
	"min9alt":  FromSemitones(0, 1, 3, 7, 10),
	"min7b9":   FromSemitones(0, 1, 3, 7, 10),

	"power": FromSemitones(0, 7),
	"sus":   FromSemitones(0, 5, 7),
	"sus2":  FromSemitones(0, 2, 7),
}

// Names lists the catalog's 39 chord names in a fixed, deterministic order.
var Names = []string{
	"empty",
	"6th", "6th-no5", "6/9",
	"aug",
	"dim", "dim7", "dim7b5",
	"maj", "maj3", "maj7", "maj7+5", "maj9", "maj9+5", "majAdd9",
	"majDom7", "majDom7+5", "maj7b5", "maj7/5", "maj9alt", "maj7b9", "maj7/9", "maj13",
	"min", "min6", "min6+5", "min9", "min11", "min13", "min13+9",
	"min7", "min7+5", "min7b5", "min7/5", "min9alt", "min7b9",
	"power", "sus", "sus2",
}
