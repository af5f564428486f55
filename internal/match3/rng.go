package match3

// Rand is the random source the engine draws tile types from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// defaultXorShiftSeed replaces a zero seed, which would lock xorshift at 0.
const defaultXorShiftSeed = 88172645463325252

// XorShift is a deterministic xorshift64 generator. The same seed yields
// the same sequence on every platform and Go release.
type XorShift struct {
	state uint64
}

// NewXorShift creates a generator from seed.
func NewXorShift(seed int64) *XorShift {
	s := uint64(seed)
	if s == 0 {
		s = defaultXorShiftSeed
	}
	return &XorShift{state: s}
}

// Next returns the next random uint64.
func (r *XorShift) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n). Returns 0 when n <= 0.
func (r *XorShift) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

func newXorShiftRand(seed int64) Rand {
	return NewXorShift(seed)
}
