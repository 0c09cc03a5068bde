// Package shift builds the RNG shift table of the flash cache timing tests.
//
// Each experiment issues two loads with a fixed setup (prefetch, relative
// address of the second load, instructions between the loads, TAG and cache
// hit state) and records a window of the way-replacement sequence before and
// after. The distance between the two windows' phases tells how many times
// the replacement generator advanced.
package shift

// Variant is the address of the second load relative to the first one.
type Variant int

const (
	NextLine Variant = iota
	NextNextLine
	SameSetNotEvicted
	SameSetEvicted
	NextSet
	Unrelated
)

// Variants lists every Variant in experiment order.
var Variants = []Variant{
	NextLine, NextNextLine, SameSetNotEvicted, SameSetEvicted, NextSet, Unrelated,
}

var variantNames = [...]string{
	"next_line",
	"next_next_line",
	"same_set_not_evicted",
	"same_set_evicted",
	"next_set",
	"unrelated",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "unknown"
	}
	return variantNames[v]
}

// SameCacheSet reports whether the second load maps to the first load's set.
func (v Variant) SameCacheSet() bool {
	return v == SameSetNotEvicted || v == SameSetEvicted
}

// Spacing is what separates the two loads.
type Spacing int

const (
	// Single runs the first load only. It is the baseline and produces no row.
	Single Spacing = iota
	Empty
	Nop
	Add1
	Add2
	Add3
	Add4
)

// Spacings lists every Spacing in experiment order.
var Spacings = []Spacing{Single, Empty, Nop, Add1, Add2, Add3, Add4}

var spacingNames = [...]string{"single", "empty", "nop", "add_1", "add_2", "add_3", "add_4"}

func (s Spacing) String() string {
	if s < 0 || int(s) >= len(spacingNames) {
		return "unknown"
	}
	return spacingNames[s]
}

// IsBaseline reports whether s is the single-load baseline.
func (s Spacing) IsBaseline() bool {
	return s == Single
}

// Experiment is one parameter combination.
type Experiment struct {
	Prefetch bool
	Variant  Variant
	Spacing  Spacing
	TagHit   bool
	CacheHit bool
}

// Experiments returns every parameter combination in the order the tests
// record them: prefetch, variant, spacing, TAG hit, cache hit, with the last
// one varying fastest.
func Experiments() []Experiment {
	bools := []bool{false, true}
	out := make([]Experiment, 0, len(bools)*len(Variants)*len(Spacings)*len(bools)*len(bools))
	for _, prefetch := range bools {
		for _, variant := range Variants {
			for _, spacing := range Spacings {
				for _, tagHit := range bools {
					for _, cacheHit := range bools {
						out = append(out, Experiment{
							Prefetch: prefetch,
							Variant:  variant,
							Spacing:  spacing,
							TagHit:   tagHit,
							CacheHit: cacheHit,
						})
					}
				}
			}
		}
	}
	return out
}

// Correction is the number of generator steps the experiment setup itself
// causes, which must be removed from the measured shift.
func (e Experiment) Correction() int {
	c := 0
	// Preparing the TAG/cache hit or miss
	if e.CacheHit {
		c += 2
	} else if e.TagHit {
		c++
	}
	if !e.Variant.SameCacheSet() && !e.Spacing.IsBaseline() {
		c++
	}
	return c
}
