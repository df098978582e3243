package clause

// Rule names the inference that produced a clause.
type Rule string

const (
	RuleInput              Rule = "input"
	RuleSuperposition       Rule = "superposition"
	RuleResolution          Rule = "resolution"
	RuleEqualityFactoring   Rule = "equality_factoring"
	RuleEqualityResolution  Rule = "equality_resolution"
	RuleForwardDemodulation Rule = "forward_demodulation"
	RuleBackwardDemodulation Rule = "backward_demodulation"
)

// Inference is the tagged record of how a clause was derived: which
// rule, and from which parent clause ids.
type Inference struct {
	Rule    Rule
	Parents []ID
}

// IsInput reports whether the clause was given directly as part of
// the input problem rather than derived.
func (inf Inference) IsInput() bool { return inf.Rule == RuleInput }
