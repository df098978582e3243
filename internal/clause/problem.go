package clause

// Problem is a sequence of input clauses, each tagged with a
// per-clause input type (axiom/conjecture/negated-conjecture). It is
// the unit internal/tptpclause's loader and prover's Env.Solve both operate
// on.
type Problem struct {
	Clauses []*Clause
}

// Axioms returns the subset of p's clauses classified InputAxiom.
func (p *Problem) Axioms() []*Clause { return p.byType(InputAxiom) }

// Conjectures returns the subset of p's clauses classified
// InputConjecture or InputNegatedConjecture.
func (p *Problem) Conjectures() []*Clause {
	var out []*Clause
	for _, c := range p.Clauses {
		if c.InputType() == InputConjecture || c.InputType() == InputNegatedConjecture {
			out = append(out, c)
		}
	}
	return out
}

func (p *Problem) byType(it InputType) []*Clause {
	var out []*Clause
	for _, c := range p.Clauses {
		if c.InputType() == it {
			out = append(out, c)
		}
	}
	return out
}
