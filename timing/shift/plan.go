package shift

import (
	"fmt"

	"github.com/sarchlab/flashfix/timing/flashcache"
)

// SecondLoadOffset returns the distance in bytes from the first load to the
// second load for the given cache geometry.
func (v Variant) SecondLoadOffset(cfg flashcache.Config) uint64 {
	line := uint64(cfg.LineSize)
	span := cfg.SetSpan()

	switch v {
	case NextLine:
		return line
	case NextNextLine:
		return 2 * line
	case SameSetNotEvicted:
		return span
	case SameSetEvicted:
		return span * uint64(cfg.Ways)
	case NextSet:
		return span + line
	default:
		return 2*span + span/2
	}
}

// PlanEntry describes the two loads of one variant.
type PlanEntry struct {
	Variant     Variant
	FirstAddr   uint64
	SecondAddr  uint64
	FirstSet    int
	SecondSet   int
	SecondTag   uint64
	SecondHit   bool
	FirstEvicts bool
	// FirstResident is true if the first line is still cached after the
	// second load.
	FirstResident bool
}

// SameSet reports whether both loads map to one set.
func (p PlanEntry) SameSet() bool {
	return p.FirstSet == p.SecondSet
}

// NewPlan lays out the loads of every variant starting from base and replays
// them on a cold cache. For SameSetEvicted the set is filled between the two
// loads so that the second load replaces the first one.
func NewPlan(cfg flashcache.Config, base uint64) []PlanEntry {
	c := flashcache.New(cfg)
	base = c.LineAddr(base)

	plan := make([]PlanEntry, 0, len(Variants))
	for _, v := range Variants {
		c.Reset()
		second := base + v.SecondLoadOffset(cfg)

		c.Access(base)
		if v == SameSetEvicted {
			for k := 1; k < cfg.Ways; k++ {
				c.Access(base + uint64(k)*cfg.SetSpan())
			}
		}
		res := c.Access(second)

		plan = append(plan, PlanEntry{
			Variant:       v,
			FirstAddr:     base,
			SecondAddr:    second,
			FirstSet:      c.SetOf(base),
			SecondSet:     res.Set,
			SecondTag:     c.TagOf(second),
			SecondHit:     res.Hit,
			FirstEvicts:   res.Evicted && res.EvictedAddr == base,
			FirstResident: c.Contains(base),
		})
	}
	return plan
}

// CheckPlan verifies that each variant's loads relate the way its name says.
func CheckPlan(plan []PlanEntry) error {
	for _, p := range plan {
		if p.SameSet() != p.Variant.SameCacheSet() {
			return fmt.Errorf("%s: second load at %#x in set %d, first load in set %d",
				p.Variant, p.SecondAddr, p.SecondSet, p.FirstSet)
		}
		if p.FirstEvicts != (p.Variant == SameSetEvicted) {
			return fmt.Errorf("%s: second load evicting first load is %t",
				p.Variant, p.FirstEvicts)
		}
		if p.FirstResident == (p.Variant == SameSetEvicted) {
			return fmt.Errorf("%s: first line resident after second load is %t",
				p.Variant, p.FirstResident)
		}
		if p.SecondHit {
			return fmt.Errorf("%s: second load at %#x hits a cold cache", p.Variant, p.SecondAddr)
		}
	}
	return nil
}
