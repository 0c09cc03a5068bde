// Package rng locates observed windows of the flash cache way-replacement
// sequence.
//
// The cache picks eviction ways from a fixed cyclic pseudo-random sequence.
// Tests observe a short contiguous window of that sequence; the window's
// starting offset (its phase) tells how far the generator advanced.
package rng

import "fmt"

// MatchKind classifies the outcome of a search.
type MatchKind int

const (
	// MatchNone means the needle does not occur in the cycle.
	MatchNone MatchKind = iota
	// MatchUnique means the needle occurs at exactly one offset.
	MatchUnique
	// MatchAmbiguous means the needle occurs at more than one offset.
	MatchAmbiguous
)

func (k MatchKind) String() string {
	switch k {
	case MatchNone:
		return "none"
	case MatchUnique:
		return "unique"
	case MatchAmbiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("MatchKind(%d)", int(k))
	}
}

// Match is the result of searching for a needle in a cycle.
type Match struct {
	Kind MatchKind
	// Offset is the phase of a unique match. It is -1 otherwise.
	Offset int
	// Offsets lists every matching offset in increasing order.
	Offsets []int
}

// Err converts a non-unique match into the corresponding error.
func (m Match) Err() error {
	switch m.Kind {
	case MatchUnique:
		return nil
	case MatchAmbiguous:
		return &AmbiguousMatchError{Offsets: m.Offsets}
	default:
		return &NotFoundError{}
	}
}

// NotFoundError reports a window that does not occur in the cycle.
type NotFoundError struct {
	Needle string
}

func (e *NotFoundError) Error() string {
	if e.Needle == "" {
		return "rng subsequence not found"
	}
	return fmt.Sprintf("rng subsequence %s not found", e.Needle)
}

// AmbiguousMatchError reports a window that occurs at several offsets.
type AmbiguousMatchError struct {
	Needle  string
	Offsets []int
}

func (e *AmbiguousMatchError) Error() string {
	if e.Needle == "" {
		return fmt.Sprintf("rng subsequence position not unique: offsets %v", e.Offsets)
	}
	return fmt.Sprintf("rng subsequence %s position not unique: offsets %v", e.Needle, e.Offsets)
}

// Find searches for needle as a contiguous run inside the endless repetition
// of cycle. Only starting offsets in [0, len(cycle)) are considered. An empty
// needle matches at every offset.
func Find[T comparable](cycle, needle []T) Match {
	m := Match{Kind: MatchNone, Offset: -1}
	n := len(cycle)
	if n == 0 {
		return m
	}

	for i := 0; i < n; i++ {
		if matchesAt(cycle, needle, i) {
			m.Offsets = append(m.Offsets, i)
		}
	}

	switch len(m.Offsets) {
	case 0:
	case 1:
		m.Kind = MatchUnique
		m.Offset = m.Offsets[0]
	default:
		m.Kind = MatchAmbiguous
	}
	return m
}

func matchesAt[T comparable](cycle, needle []T, start int) bool {
	n := len(cycle)
	for j, want := range needle {
		if cycle[(start+j)%n] != want {
			return false
		}
	}
	return true
}

// Locate returns the unique phase of needle in cycle. It fails with
// *NotFoundError or *AmbiguousMatchError when the phase is not unique.
func Locate[T comparable](cycle, needle []T) (int, error) {
	m := Find(cycle, needle)
	switch m.Kind {
	case MatchUnique:
		return m.Offset, nil
	case MatchAmbiguous:
		return -1, &AmbiguousMatchError{Needle: fmt.Sprint(needle), Offsets: m.Offsets}
	default:
		return -1, &NotFoundError{Needle: fmt.Sprint(needle)}
	}
}
