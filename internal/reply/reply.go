// Package reply selects an acceptable generated utterance from a chain.
package reply

import (
	"math/rand"

	"charliebot/internal/markov"
)

// Policy bounds the candidate scan and the accepted reply length.
// The length window is half-open: MinLen <= len(reply) < MaxLen.
type Policy struct {
	MinLen   int
	MaxLen   int
	Attempts int
	Fallback string
}

func Default() Policy {
	return Policy{MinLen: 20, MaxLen: 100, Attempts: 500, Fallback: "oh noes :("}
}

// Select scans up to Attempts candidates from the chain and returns the first
// whose length fits the window. The generator may run dry before the budget
// is spent; either way the fallback is returned when nothing fits.
func (p Policy) Select(chain *markov.Chain, rng *rand.Rand) string {
	s := chain.Replies(rng)
	for i := 0; i < p.Attempts; i++ {
		out, ok := s.Next()
		if !ok {
			break
		}
		if len(out) >= p.MinLen && len(out) < p.MaxLen {
			return out
		}
	}
	return p.Fallback
}
