// Package train builds one markov chain per nick from a parsed chat log.
package train

import (
	"charliebot/internal/logparse"
	"charliebot/internal/markov"
)

// Build drains the parser and returns a chain per nick. Each yielded entry is
// one independent observation for its nick's chain; skipped lines are ignored.
// Nicks that normalize to the empty string are kept here and filtered out at
// save time.
func Build(p *logparse.Parser) map[string]*markov.Chain {
	chains := make(map[string]*markov.Chain)
	for {
		res := p.Next()
		switch res.Kind {
		case logparse.Done:
			return chains
		case logparse.Skip:
			continue
		case logparse.Yield:
			c, ok := chains[res.Entry.Nick]
			if !ok {
				c = markov.New()
				chains[res.Entry.Nick] = c
			}
			c.Feed(res.Entry.Msg)
		}
	}
}
