package shift

import (
	"fmt"

	"github.com/sarchlab/flashfix/rng"
)

// Row is one line of the shift table.
type Row struct {
	Experiment
	Shift  int
	Cycles int64
}

// StreamIntegrityError reports recorded data that does not line up with the
// experiment enumeration.
type StreamIntegrityError struct {
	Stream    string
	Consumed  int
	Available int
}

func (e *StreamIntegrityError) Error() string {
	return fmt.Sprintf("%s size mismatch: consumed %d of %d",
		e.Stream, e.Consumed, e.Available)
}

// Builder turns recorded RNG windows into shift table rows.
type Builder struct {
	config *Config
}

// NewBuilder creates a Builder. A nil config selects DefaultConfig.
func NewBuilder(config *Config) *Builder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Builder{config: config}
}

// Config returns the builder configuration.
func (b *Builder) Config() *Config {
	return b.config
}

// Phase returns the offset of window in the configured sequence.
func (b *Builder) Phase(window []uint8) (int, error) {
	return rng.Locate([]uint8(b.config.Sequence), window)
}

// RawShift returns how far the generator advanced between the end of the
// first window and the start of the second one.
func (b *Builder) RawShift(first, second []uint8) (int, error) {
	p1, err := b.Phase(first)
	if err != nil {
		return 0, err
	}
	p2, err := b.Phase(second)
	if err != nil {
		return 0, err
	}

	n := len(b.config.Sequence)
	return ((p2-(p1+len(first)))%n + n) % n, nil
}

// Build processes every experiment in enumeration order. Rows are produced
// for all experiments except the single-load baselines. Results must hold
// exactly two windows and Cycles exactly one value per experiment. The
// configuration is validated first.
func (b *Builder) Build(data *Data) ([]Row, error) {
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shift config: %w", err)
	}

	w := b.config.WindowSize
	experiments := Experiments()
	rows := make([]Row, 0, len(experiments))

	resultPos := 0
	for i, e := range experiments {
		if resultPos+2*w > len(data.Results) {
			return nil, &StreamIntegrityError{
				Stream:    "results",
				Consumed:  resultPos,
				Available: len(data.Results),
			}
		}
		if i >= len(data.Cycles) {
			return nil, &StreamIntegrityError{
				Stream:    "cycles",
				Consumed:  i,
				Available: len(data.Cycles),
			}
		}

		first := data.Results[resultPos : resultPos+w]
		second := data.Results[resultPos+w : resultPos+2*w]
		raw, err := b.RawShift(first, second)
		if err != nil {
			return nil, fmt.Errorf("experiment %d (%s): %w", i, e, err)
		}
		resultPos += 2 * w

		if e.Spacing.IsBaseline() {
			continue
		}
		rows = append(rows, Row{
			Experiment: e,
			Shift:      raw - e.Correction(),
			Cycles:     data.Cycles[i],
		})
	}

	if resultPos != len(data.Results) {
		return nil, &StreamIntegrityError{
			Stream:    "results",
			Consumed:  resultPos,
			Available: len(data.Results),
		}
	}
	if len(experiments) != len(data.Cycles) {
		return nil, &StreamIntegrityError{
			Stream:    "cycles",
			Consumed:  len(experiments),
			Available: len(data.Cycles),
		}
	}

	return rows, nil
}

// String renders the experiment parameters for diagnostics.
func (e Experiment) String() string {
	return fmt.Sprintf("prefetch=%t variant=%s between=%s tag_hit=%t cache_hit=%t",
		e.Prefetch, e.Variant, e.Spacing, e.TagHit, e.CacheHit)
}
