// Package markov implements the per-nick generative model: a first-order
// word chain fed with whitespace-tokenized messages.
package markov

import (
	"math/rand"
	"strings"
)

// end marks the end of an observation in a successor list. Tokens come from
// strings.Fields and are never empty, so the empty string is free to use.
const end = ""

// Chain is a first-order word chain. Fields are exported for gob encoding;
// callers should treat a chain as opaque beyond Feed and Replies.
//
// A chain is mutated only while it is being built. Once handed to the cache
// it is shared read-only, so concurrent Replies calls on a built chain are
// safe as long as each sampler gets its own rand source.
type Chain struct {
	// Starts is the multiset of words that opened an observation.
	Starts []string
	// Succ maps a word to the multiset of words seen after it (end included).
	Succ map[string][]string
}

func New() *Chain {
	return &Chain{Succ: make(map[string][]string)}
}

// Feed records one message as a single independent observation.
// Messages with no tokens are ignored.
func (c *Chain) Feed(msg string) {
	toks := strings.Fields(msg)
	if len(toks) == 0 {
		return
	}
	if c.Succ == nil {
		c.Succ = make(map[string][]string)
	}
	c.Starts = append(c.Starts, toks[0])
	for i, w := range toks {
		next := end
		if i+1 < len(toks) {
			next = toks[i+1]
		}
		c.Succ[w] = append(c.Succ[w], next)
	}
}

// Empty reports whether the chain has seen no observations.
func (c *Chain) Empty() bool { return len(c.Starts) == 0 }

// Replies returns a lazy sampler over generated strings. The sampler never
// bounds itself; the consumer decides how many candidates to pull.
func (c *Chain) Replies(rng *rand.Rand) *Sampler {
	return &Sampler{c: c, rng: rng}
}

// Sampler produces one random walk through the chain per Next call.
type Sampler struct {
	c   *Chain
	rng *rand.Rand
}

// Next generates one string. ok is false once the chain cannot produce
// anything (never trained), after which the sequence stays terminated.
func (s *Sampler) Next() (string, bool) {
	if s.c.Empty() {
		return "", false
	}
	w := pick(s.rng, s.c.Starts)
	words := []string{w}
	for {
		succ := s.c.Succ[w]
		if len(succ) == 0 {
			break
		}
		w = pick(s.rng, succ)
		if w == end {
			break
		}
		words = append(words, w)
	}
	return strings.Join(words, " "), true
}

func pick(rng *rand.Rand, xs []string) string {
	return xs[rng.Intn(len(xs))]
}
