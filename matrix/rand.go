package matrix

import (
	"math"
	"math/rand"
	"time"
)

// normalSeed is the constant seed of the process-wide normal source, so that
// RandomNormal fixtures reproduce from one run to the next.
const normalSeed = 1

// NormalSource produces normally distributed scalars with the Box-Muller
// transform. Each draw from the underlying generator yields two deviates;
// the second one is cached and handed out on the following call.
type NormalSource struct {
	rng    *rand.Rand
	cached Scalar
	has    bool
}

// NewNormalSource returns a normal source driven by a generator with the
// given seed.
func NewNormalSource(seed int64) *NormalSource {
	return &NormalSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next normal deviate with mean 0 and variance 1.
func (s *NormalSource) Next() Scalar {
	if s.has {
		s.has = false
		return s.cached
	}

	u1 := 1.0 - s.rng.Float64() // in (0, 1], keeps the log finite
	u2 := s.rng.Float64()
	r := math.Sqrt(-2.0 * math.Log(u1))

	s.cached = Scalar(r * math.Sin(2.0*math.Pi*u2))
	s.has = true

	return Scalar(r * math.Cos(2.0 * math.Pi * u2))
}

var (
	// Normal drives RandomNormal. It is deliberately seeded with a
	// constant and never re-seeded from real entropy; replace it in tests
	// that need a different sequence.
	Normal = NewNormalSource(normalSeed)

	// Shuffle drives ShuffleColumns. Unlike Normal it is seeded from the
	// clock, so permutations differ between runs; replace it in tests
	// that need a reproducible order.
	Shuffle = rand.New(rand.NewSource(time.Now().UnixNano()))
)
