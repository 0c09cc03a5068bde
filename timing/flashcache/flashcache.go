// Package flashcache models the geometry of the VIMS flash cache using Akita
// cache components.
//
// The model tracks tags only. It is used to lay out the second load of a
// shift experiment relative to the first one and to predict whether that load
// hits, misses or evicts.
package flashcache

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds cache geometry parameters.
type Config struct {
	// LineSize in bytes
	LineSize int `json:"line_size"`
	// Sets is the number of sets
	Sets int `json:"sets"`
	// Ways is the associativity
	Ways int `json:"ways"`
}

// DefaultConfig returns the CC2650 VIMS geometry:
// - 8B lines (address bits [2:0])
// - 256 sets (address bits [10:3])
// - 4 ways, tag in address bits [31:11]
func DefaultConfig() Config {
	return Config{
		LineSize: 8,
		Sets:     256,
		Ways:     4,
	}
}

// Validate checks that every dimension is a positive power of two.
func (c Config) Validate() error {
	for _, dim := range []struct {
		name  string
		value int
	}{
		{"line_size", c.LineSize},
		{"sets", c.Sets},
		{"ways", c.Ways},
	} {
		if dim.value <= 0 || dim.value&(dim.value-1) != 0 {
			return fmt.Errorf("%s must be a positive power of two, got %d", dim.name, dim.value)
		}
	}
	return nil
}

// SetSpan is the distance in bytes between two addresses that map to the
// same set with different tags.
func (c Config) SetSpan() uint64 {
	return uint64(c.LineSize * c.Sets)
}

// AccessResult contains the outcome of a cache access.
type AccessResult struct {
	Hit bool
	Set int
	Way int
	// Evicted is true if a valid line was replaced.
	Evicted bool
	// EvictedAddr is the line address of the replaced line.
	EvictedAddr uint64
}

// Statistics holds access counters.
type Statistics struct {
	Accesses  uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is a tag-only flash cache model.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Statistics
}

// New creates a cache with the given geometry.
func New(config Config) *Cache {
	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			config.Sets,
			config.Ways,
			config.LineSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Config returns the cache geometry.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns access statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// LineAddr returns the line-aligned address of addr.
func (c *Cache) LineAddr(addr uint64) uint64 {
	return addr / uint64(c.config.LineSize) * uint64(c.config.LineSize)
}

// SetOf returns the set index addr maps to.
func (c *Cache) SetOf(addr uint64) int {
	return int(addr / uint64(c.config.LineSize) % uint64(c.config.Sets))
}

// TagOf returns the tag of addr.
func (c *Cache) TagOf(addr uint64) uint64 {
	return addr / c.config.SetSpan()
}

// Contains reports whether the line holding addr is cached, without touching
// replacement state.
func (c *Cache) Contains(addr uint64) bool {
	block := c.directory.Lookup(0, c.LineAddr(addr))
	return block != nil && block.IsValid
}

// Access looks up addr and fills the line on a miss.
func (c *Cache) Access(addr uint64) AccessResult {
	c.stats.Accesses++
	lineAddr := c.LineAddr(addr)

	block := c.directory.Lookup(0, lineAddr)
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		return AccessResult{Hit: true, Set: block.SetID, Way: block.WayID}
	}

	c.stats.Misses++
	victim := c.directory.FindVictim(lineAddr)
	result := AccessResult{Set: victim.SetID, Way: victim.WayID}
	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = victim.Tag
	}

	victim.Tag = lineAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	return result
}

// Reset invalidates every line and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
