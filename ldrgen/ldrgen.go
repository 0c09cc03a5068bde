// Package ldrgen generates random load sequences for flash cache stress
// tests.
package ldrgen

import (
	"fmt"
	"io"
	"math/rand"
)

// Config controls the generated sequence.
type Config struct {
	// Count is the number of instructions. Default: 50.
	Count int
	// MinBaseReg and MaxBaseReg bound the base register. Default: r1..r6.
	MinBaseReg int
	MaxBaseReg int
	// MaxOffsetSteps bounds the immediate offset, in units of OffsetStep.
	// Default: 12.
	MaxOffsetSteps int
	// OffsetStep is the immediate granularity in bytes. Default: 8, one
	// flash cache line.
	OffsetStep int
	// DestReg receives every load. Default: r7.
	DestReg int
}

// DefaultConfig returns the configuration of the flash cache tests.
func DefaultConfig() Config {
	return Config{
		Count:          50,
		MinBaseReg:     1,
		MaxBaseReg:     6,
		MaxOffsetSteps: 12,
		OffsetStep:     8,
		DestReg:        7,
	}
}

// Load is one generated `ldr.n` instruction.
type Load struct {
	Dest   int
	Base   int
	Offset int
}

func (l Load) String() string {
	return fmt.Sprintf("ldr.n r%d, [r%d, #%d]", l.Dest, l.Base, l.Offset)
}

// Generator produces random loads.
type Generator struct {
	config Config
	rand   *rand.Rand
}

// New creates a Generator seeded with seed.
func New(config Config, seed int64) *Generator {
	return &Generator{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Next returns one random load.
func (g *Generator) Next() Load {
	c := g.config
	return Load{
		Dest:   c.DestReg,
		Base:   c.MinBaseReg + g.rand.Intn(c.MaxBaseReg-c.MinBaseReg+1),
		Offset: g.rand.Intn(c.MaxOffsetSteps+1) * c.OffsetStep,
	}
}

// Generate returns Count random loads.
func (g *Generator) Generate() []Load {
	loads := make([]Load, g.config.Count)
	for i := range loads {
		loads[i] = g.Next()
	}
	return loads
}

// Write writes Count random loads to w, one per line.
func (g *Generator) Write(w io.Writer) error {
	for _, l := range g.Generate() {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("failed to write loads: %w", err)
		}
	}
	return nil
}
