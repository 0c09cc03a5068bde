// Package bitfield splits packed 32-bit fixture values into named sub-fields.
//
// A packed value is described by a Scheme: an ordered list of fields, each with
// a bit width. The first field occupies the least significant bits. The widths
// of a well-formed scheme add up to exactly 32.
package bitfield

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PackedWidth is the number of bits every scheme must cover.
const PackedWidth = 32

var (
	combPattern  = regexp.MustCompile(`^COMB((?:_\w+?_LEN_\d+)+)$`)
	groupPattern = regexp.MustCompile(`_(\w+?)_LEN_(\d+)`)
)

// Field is one named sub-field of a packed value.
type Field struct {
	Name  string
	Width uint
}

// Scheme describes how a 32-bit value is packed. Fields are listed from the
// least significant to the most significant.
type Scheme struct {
	Fields []Field
}

// SchemeError reports field widths that do not cover exactly 32 bits.
type SchemeError struct {
	Symbol string
	Widths []uint
	Sum    uint
}

func (e *SchemeError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("bitfield scheme %s: widths %v sum to %d, want %d",
			e.Symbol, e.Widths, e.Sum, PackedWidth)
	}
	return fmt.Sprintf("bitfield scheme: widths %v sum to %d, want %d",
		e.Widths, e.Sum, PackedWidth)
}

// ParseScheme parses a packed symbol name of the form
// COMB_<NAME>_LEN_<WIDTH>[_<NAME>_LEN_<WIDTH>...].
//
// ok is false when the symbol does not follow the convention at all. A symbol
// that follows the convention but declares an invalid width layout returns a
// *SchemeError.
func ParseScheme(symbol string) (scheme Scheme, ok bool, err error) {
	m := combPattern.FindStringSubmatch(symbol)
	if m == nil {
		return Scheme{}, false, nil
	}

	for _, g := range groupPattern.FindAllStringSubmatch(m[1], -1) {
		width, err := strconv.ParseUint(g[2], 10, 32)
		if err != nil {
			return Scheme{}, true, &SchemeError{Symbol: symbol, Sum: 0}
		}
		scheme.Fields = append(scheme.Fields, Field{Name: g[1], Width: uint(width)})
	}

	if err := scheme.Validate(); err != nil {
		err.(*SchemeError).Symbol = symbol
		return Scheme{}, true, err
	}

	return scheme, true, nil
}

// Widths returns the field widths in declaration order.
func (s Scheme) Widths() []uint {
	widths := make([]uint, len(s.Fields))
	for i, f := range s.Fields {
		widths[i] = f.Width
	}
	return widths
}

// Names returns the field names in declaration order.
func (s Scheme) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks that the widths cover exactly 32 bits.
func (s Scheme) Validate() error {
	return checkWidths(s.Widths())
}

// String renders the scheme back into its symbol form.
func (s Scheme) String() string {
	var b strings.Builder
	b.WriteString("COMB")
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "_%s_LEN_%d", f.Name, f.Width)
	}
	return b.String()
}

// Decompose splits values according to s. See Decompose.
func (s Scheme) Decompose(values []uint32) ([][]uint32, error) {
	return Decompose(values, s.Widths())
}

func checkWidths(widths []uint) error {
	var sum uint
	zero := false
	for _, w := range widths {
		sum += w
		if w == 0 {
			zero = true
		}
	}
	if len(widths) == 0 || zero || sum != PackedWidth {
		return &SchemeError{Widths: append([]uint(nil), widths...), Sum: sum}
	}
	return nil
}

// DecomposeValue extracts each field of value, least significant field first.
func DecomposeValue(value uint32, widths []uint) ([]uint32, error) {
	if err := checkWidths(widths); err != nil {
		return nil, err
	}
	return split(value, widths), nil
}

func split(value uint32, widths []uint) []uint32 {
	v := uint64(value)
	parts := make([]uint32, len(widths))
	for i, w := range widths {
		parts[i] = uint32(v & (1<<w - 1))
		v >>= w
	}
	return parts
}

// Decompose splits every value into its fields and groups the results by
// field. The returned slice has one entry per width; each entry has one
// element per input value, in input order.
func Decompose(values []uint32, widths []uint) ([][]uint32, error) {
	if err := checkWidths(widths); err != nil {
		return nil, err
	}

	fields := make([][]uint32, len(widths))
	for i := range fields {
		fields[i] = make([]uint32, len(values))
	}

	for j, v := range values {
		for i, part := range split(v, widths) {
			fields[i][j] = part
		}
	}

	return fields, nil
}

// Reassemble packs field values back into a single 32-bit value. It is the
// inverse of DecomposeValue.
func Reassemble(fields []uint32, widths []uint) (uint32, error) {
	if err := checkWidths(widths); err != nil {
		return 0, err
	}
	if len(fields) != len(widths) {
		return 0, fmt.Errorf("bitfield: %d field values for %d widths", len(fields), len(widths))
	}

	var v uint64
	var shift uint
	for i, w := range widths {
		v |= (uint64(fields[i]) & (1<<w - 1)) << shift
		shift += w
	}
	return uint32(v), nil
}
