package fixture

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single input line. Expected arrays of large fixtures
// easily exceed bufio's default token size.
const maxLineSize = 16 * 1024 * 1024

// Statistics holds rewrite counters.
type Statistics struct {
	Lines          uint64
	Stanzas        uint64
	SplitStanzas   uint64
	EmittedStanzas uint64
}

// Rewriter copies a fixture stream and splits packed stanzas on the way.
type Rewriter struct {
	out        *bufio.Writer
	lineEnding string
	stats      Statistics
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLineEnding sets the line terminator used for output. Default: "\n".
func WithLineEnding(ending string) Option {
	return func(r *Rewriter) {
		r.lineEnding = ending
	}
}

// NewRewriter creates a Rewriter writing to w.
func NewRewriter(w io.Writer, opts ...Option) *Rewriter {
	r := &Rewriter{
		out:        bufio.NewWriter(w),
		lineEnding: "\n",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats returns the counters accumulated so far.
func (r *Rewriter) Stats() Statistics {
	return r.stats
}

// lineReader yields lines and tracks line numbers.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
	raw     string
}

// next returns the next line with surrounding whitespace removed. The
// untouched line stays available in lr.raw.
func (lr *lineReader) next() (string, bool) {
	if !lr.scanner.Scan() {
		return "", false
	}
	lr.line++
	lr.raw = lr.scanner.Text()
	return strings.TrimSpace(lr.raw), true
}

// Rewrite reads the whole of in and writes the rewritten stream. Output is
// flushed before returning, including on error.
func (r *Rewriter) Rewrite(in io.Reader) (err error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lr := &lineReader{scanner: scanner}

	defer func() {
		if flushErr := r.out.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("failed to write output: %w", flushErr)
		}
	}()

	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		r.stats.Lines++

		symbolSpacing, symbol, isSymbol := matchSymbol(line)
		if !isSymbol {
			if err := r.writeLine(lr.raw); err != nil {
				return err
			}
			continue
		}

		st, err := r.readStanza(lr, symbolSpacing, symbol)
		if err != nil {
			return err
		}
		if err := r.emit(st); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// readStanza consumes the address and expected lines following a symbol line.
func (r *Rewriter) readStanza(lr *lineReader, symbolSpacing, symbol string) (Stanza, error) {
	st := Stanza{Symbol: symbol, SymbolSpacing: symbolSpacing}

	line, ok := lr.next()
	if !ok {
		return st, r.eofError(lr)
	}
	r.stats.Lines++
	st.AddressSpacing, st.Address, ok = parseAddress(line)
	if !ok {
		return st, &ParseError{Line: lr.line, Kind: BadAddress, Text: line}
	}

	line, ok = lr.next()
	if !ok {
		return st, r.eofError(lr)
	}
	r.stats.Lines++
	spacing, values, err := parseExpected(line)
	switch {
	case err == errNoMatch:
		return st, &ParseError{Line: lr.line, Kind: BadExpected, Text: line}
	case err != nil:
		return st, &ParseError{Line: lr.line, Kind: BadArray, Text: line, Err: err}
	}
	st.ExpectedSpacing = spacing
	st.Expected = values

	r.stats.Stanzas++
	return st, nil
}

func (r *Rewriter) eofError(lr *lineReader) error {
	if err := lr.scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return &ParseError{Line: lr.line + 1, Kind: UnexpectedEOF}
}

func (r *Rewriter) emit(st Stanza) error {
	parts, err := Split(st)
	if err != nil {
		return err
	}
	if len(parts) > 1 || parts[0].Symbol != st.Symbol {
		r.stats.SplitStanzas++
	}

	for _, part := range parts {
		for _, line := range part.Lines() {
			if err := r.writeLine(line); err != nil {
				return err
			}
		}
		r.stats.EmittedStanzas++
	}
	return nil
}

func (r *Rewriter) writeLine(line string) error {
	if _, err := r.out.WriteString(line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := r.out.WriteString(r.lineEnding); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
