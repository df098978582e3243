// Package infer implements the generating and simplifying inference
// engines: superposition, binary resolution, equality
// factoring, forward/backward demodulation, wired against the
// fingerprint, substitution-tree and code-tree indices.
package infer

import (
	"github.com/superpose/superpose/internal/clause"
)

// Locator names one literal position within one active clause: the
// unit every substitution-tree leaf in this package carries as Data
// (code-tree demodulator leaves carry a demodEntry instead), so a
// retrieval hit can be turned back into the literal it came from.
type Locator struct {
	Clause *clause.Clause
	LitIdx int
}
