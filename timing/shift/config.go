package shift

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/flashfix/rng"
	"github.com/sarchlab/flashfix/timing/flashcache"
)

// Config holds the parameters of a shift table build.
type Config struct {
	// WindowSize is the number of RNG samples recorded before and after each
	// experiment. Default: 7.
	WindowSize int `json:"window_size"`

	// Sequence is the way-replacement sequence the samples come from.
	// Default: the VIMS sequence.
	Sequence Samples `json:"sequence"`

	// Cache is the flash cache geometry used to lay out the second load.
	Cache flashcache.Config `json:"cache"`

	// BaseAddress is the address of the first load in the address plan.
	BaseAddress uint64 `json:"base_address"`
}

// DefaultConfig returns the configuration the flash cache tests use.
func DefaultConfig() *Config {
	return &Config{
		WindowSize:  7,
		Sequence:    rng.DefaultSequence(),
		Cache:       flashcache.DefaultConfig(),
		BaseAddress: 0x4000,
	}
}

// LoadConfig loads a Config from a JSON file. Missing keys keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shift config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse shift config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize shift config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write shift config file: %w", err)
	}

	return nil
}

// Validate checks the configuration, including that the address plan puts
// every variant where its name says.
func (c *Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("window_size must be > 0")
	}
	if len(c.Sequence) == 0 {
		return fmt.Errorf("sequence must not be empty")
	}
	if c.WindowSize > len(c.Sequence) {
		return fmt.Errorf("window_size %d exceeds sequence length %d",
			c.WindowSize, len(c.Sequence))
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := CheckPlan(NewPlan(c.Cache, c.BaseAddress)); err != nil {
		return fmt.Errorf("address plan: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Sequence = append([]uint8(nil), c.Sequence...)
	return &clone
}

// Samples is a run of RNG samples. It encodes as a JSON array of numbers
// rather than the base64 string encoding/json uses for byte slices.
type Samples []uint8

// MarshalJSON implements json.Marshaler.
func (s Samples) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(s))
	for i, v := range s {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}

// Data holds the recorded measurements of a full experiment run.
type Data struct {
	// Results holds two windows of RNG samples per experiment, flattened.
	Results Samples `json:"results"`
	// Cycles holds the measured cycle count of every experiment, exactly one
	// per experiment. Surplus entries make Build fail.
	Cycles []int64 `json:"cycles"`
}

// LoadData loads recorded measurements from a JSON file.
func LoadData(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	data := &Data{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	return data, nil
}
