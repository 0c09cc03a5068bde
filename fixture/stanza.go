// Package fixture rewrites flash test fixture streams.
//
// A fixture stream is line oriented. Three consecutive lines form a stanza:
//
//	symbol:   COMB_LOW_LEN_16_HIGH_LEN_16
//	address:  0x20000100
//	expected: [65537, 131074]
//
// Stanzas whose symbol follows the packed naming convention are split into one
// stanza per field. Everything else passes through.
package fixture

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sarchlab/flashfix/bitfield"
)

var (
	symbolPattern   = regexp.MustCompile(`^symbol:(\s*)(\w+)$`)
	addressPattern  = regexp.MustCompile(`^address:(\s*)((?:0x)?[a-fA-Z0-9]+)$`)
	expectedPattern = regexp.MustCompile(`^expected:(\s*)(\[\d+(?:,\s*\d+)*\])$`)
)

// Stanza is one symbol/address/expected triple. The spacing fields hold the
// whitespace that followed each colon in the input.
type Stanza struct {
	Symbol   string
	Address  string
	Expected []uint32

	SymbolSpacing   string
	AddressSpacing  string
	ExpectedSpacing string
}

// Lines renders the stanza as its three protocol lines.
func (s Stanza) Lines() [3]string {
	return [3]string{
		"symbol:" + s.SymbolSpacing + s.Symbol,
		"address:" + s.AddressSpacing + s.Address,
		"expected:" + s.ExpectedSpacing + FormatArray(s.Expected),
	}
}

// FormatArray renders values as a comma-space separated bracketed list.
func FormatArray(values []uint32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	b.WriteByte(']')
	return b.String()
}

// Split expands a stanza with a packed symbol into one stanza per field, most
// significant field first. Stanzas with ordinary symbols are returned as is.
func Split(st Stanza) ([]Stanza, error) {
	scheme, ok, err := bitfield.ParseScheme(st.Symbol)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w", st.Symbol, err)
	}
	if !ok {
		return []Stanza{st}, nil
	}

	fields, err := scheme.Decompose(st.Expected)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w", st.Symbol, err)
	}

	out := make([]Stanza, 0, len(fields))
	for i := len(fields) - 1; i >= 0; i-- {
		sub := st
		sub.Symbol = scheme.Fields[i].Name
		sub.Expected = fields[i]
		out = append(out, sub)
	}
	return out, nil
}

// matchSymbol reports whether line introduces a stanza.
func matchSymbol(line string) (spacing, symbol string, ok bool) {
	m := symbolPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func parseAddress(line string) (spacing, address string, ok bool) {
	m := addressPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func parseExpected(line string) (spacing string, values []uint32, err error) {
	m := expectedPattern.FindStringSubmatch(line)
	if m == nil {
		return "", nil, errNoMatch
	}
	if err := json.Unmarshal([]byte(m[2]), &values); err != nil {
		return "", nil, err
	}
	return m[1], values, nil
}
