package rng

// defaultSequence is the way-replacement sequence of the VIMS flash cache, as
// observed on hardware. It repeats with period 255.
var defaultSequence = [...]uint8{
	0, 1, 3, 2, 1, 3, 3, 2, 0, 1, 2, 0, 0, 0, 0, 1, 2, 1, 2, 1, 3, 2, 1, 3, 2, 1, 2, 1, 3, 2, 0, 1,
	2, 1, 3, 2, 0, 0, 0, 1, 3, 3, 3, 3, 2, 1, 3, 2, 1, 3, 3, 3, 2, 1, 2, 1, 3, 3, 2, 1, 2, 0, 0, 1,
	2, 0, 0, 0, 1, 3, 2, 1, 3, 2, 0, 0, 1, 3, 3, 3, 2, 0, 1, 3, 3, 2, 0, 1, 3, 2, 0, 0, 1, 2, 1, 3,
	2, 1, 2, 0, 1, 2, 0, 0, 1, 2, 1, 2, 0, 1, 2, 1, 2, 1, 2, 0, 1, 3, 3, 2, 1, 3, 3, 2, 1, 3, 2, 0,
	1, 3, 3, 3, 2, 1, 3, 3, 3, 3, 3, 2, 1, 2, 0, 1, 3, 2, 0, 1, 3, 2, 1, 2, 1, 2, 0, 0, 1, 3, 2, 0,
	0, 0, 0, 1, 3, 3, 2, 1, 2, 1, 2, 1, 2, 1, 3, 3, 3, 3, 2, 0, 1, 2, 1, 2, 0, 0, 0, 1, 2, 0, 1, 3,
	3, 3, 3, 3, 3, 3, 2, 0, 0, 0, 1, 2, 1, 3, 3, 3, 2, 0, 0, 1, 3, 2, 1, 2, 0, 0, 0, 0, 0, 0, 1, 2,
	0, 0, 1, 3, 3, 2, 0, 0, 1, 2, 0, 1, 2, 1, 3, 3, 2, 0, 0, 0, 0, 0, 1, 3, 2, 0, 1, 2, 0, 1, 2,
}

// DefaultSequence returns a copy of the VIMS way-replacement sequence.
func DefaultSequence() []uint8 {
	seq := make([]uint8, len(defaultSequence))
	copy(seq, defaultSequence[:])
	return seq
}
