// Package regsplit halves oversized register-value records in instruction
// test definitions.
//
// A record is a single line of the form
//
//   - { ..., registerValues: [[...], [...], ...] }
//
// and is rewritten as two records carrying the first and second half of the
// register value groups. Other lines pass through.
package regsplit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	recordPrefix = "- {"
	valuesKey    = "registerValues: ["
	recordSuffix = "]] }"
	groupSep     = "],"
)

// SplitRecord splits one record line (without line terminator) in two.
func SplitRecord(line string) ([2]string, error) {
	parts := strings.Split(line, valuesKey)
	if len(parts) != 2 {
		return [2]string{}, fmt.Errorf("expected exactly one %q in record", valuesKey)
	}
	prefix := parts[0]
	values := strings.TrimSuffix(parts[1], recordSuffix)

	groups := strings.Split(values, groupSep)
	half := len(groups) / 2

	return [2]string{
		prefix + valuesKey + strings.Join(groups[:half], groupSep) + recordSuffix,
		prefix + valuesKey + strings.Join(groups[half:], groupSep) + recordSuffix,
	}, nil
}

// Rewrite copies in to out, splitting every record line.
func Rewrite(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	w := bufio.NewWriter(out)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if !strings.HasPrefix(line, recordPrefix) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			continue
		}

		halves, err := SplitRecord(line)
		if err != nil {
			w.Flush()
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, h := range halves {
			if _, err := fmt.Fprintln(w, h); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
