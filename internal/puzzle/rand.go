package puzzle

// Rand is a deterministic linear-congruential generator. It is the
// reproducibility backbone of daily puzzles: the same seed and the same
// call sequence always produce the same outputs, across processes and
// releases.
//
// The constants must never change; any edit breaks reproducibility of every
// previously published puzzle:
//
//	state' = (state*9301 + 49297) mod 233280
//
// The multiplier 9301, increment 49297 and modulus 233280 are the classic
// "randu-style" LCG parameters; the period is short but more than adequate
// for the handful of draws a single puzzle needs.
type Rand struct {
	state int64
}

// NewRand creates a generator with the given seed.
func NewRand(seed int64) *Rand {
	return &Rand{state: seed}
}

// Next advances the generator and returns a float in [0, 1).
func (r *Rand) Next() float64 {
	r.state = (r.state*9301 + 49297) % 233280
	return float64(r.state) / 233280
}

// NextInt returns an integer in [min, max], both bounds inclusive.
func (r *Rand) NextInt(min, max int) int {
	return int(r.Next()*float64(max-min+1)) + min
}

// Shuffle returns a Fisher-Yates permutation of vals driven by Next.
// The input slice is not modified.
func (r *Rand) Shuffle(vals []int) []int {
	out := make([]int, len(vals))
	copy(out, vals)
	for i := len(out) - 1; i > 0; i-- {
		j := int(r.Next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
