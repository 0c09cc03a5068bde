package shift

import (
	"bufio"
	"fmt"
	"io"
)

// CSVHeader is the first line of the shift table.
const CSVHeader = "prefetch, second_ldr_variant, between_ldrs, tag_hit, cache_hit, rng_shift, cycles"

// WriteCSV writes the header and one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, CSVHeader); err != nil {
		return fmt.Errorf("failed to write shift table: %w", err)
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(bw, "%t, %s, %s, %t, %t, %d, %d\n",
			r.Prefetch, r.Variant, r.Spacing, r.TagHit, r.CacheHit, r.Shift, r.Cycles)
		if err != nil {
			return fmt.Errorf("failed to write shift table: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write shift table: %w", err)
	}
	return nil
}
