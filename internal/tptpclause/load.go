package tptpclause

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/term"
)

// typePrefixes maps this format's optional per-line input-type prefix
// (e.g. "conjecture: x*y=e") to clause.InputType; a line with no
// recognized prefix is an axiom, following TPTP's own
// axiom-is-the-default convention.
var typePrefixes = map[string]clause.InputType{
	"axiom":              clause.InputAxiom,
	"conjecture":         clause.InputConjecture,
	"negated_conjecture": clause.InputNegatedConjecture,
}

// LoadProblem reads r as a sequence of clause lines and registers
// each into store/clauses, returning the resulting Problem. Blank
// lines and lines whose first non-space character is `%` are ignored.
func LoadProblem(r io.Reader, store *term.Store, clauses *clause.Store) (*clause.Problem, error) {
	comp := newCompiler(store)
	problem := &clause.Problem{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		it := clause.InputAxiom
		if idx := strings.Index(line, ":"); idx >= 0 {
			if t, ok := typePrefixes[strings.TrimSpace(line[:idx])]; ok {
				it = t
				line = strings.TrimSpace(line[idx+1:])
			}
		}

		rawLits, err := parseClauseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "tptpclause: line %d", lineNo)
		}

		comp.resetVars()
		lits := make([]term.Literal, len(rawLits))
		for i, rl := range rawLits {
			lit, err := comp.literal(rl)
			if err != nil {
				return nil, errors.Wrapf(err, "tptpclause: line %d", lineNo)
			}
			lits[i] = lit
		}

		c := clauses.NewInput(lits, clause.Transparent, it)
		problem.Clauses = append(problem.Clauses, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "tptpclause: read")
	}
	return problem, nil
}
