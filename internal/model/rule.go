package model

// Condition references one signal type and optionally constrains its
// value. Equals tests the signal's canonical value field exactly; In
// tests membership using the type's field-priority lookup. A condition
// with neither constraint matches on presence of the signal type alone.
type Condition struct {
	Signal string   `json:"signal" yaml:"signal"`
	Equals *string  `json:"equals,omitempty" yaml:"equals,omitempty"`
	In     []string `json:"in,omitempty" yaml:"in,omitempty"`
}

// ConditionGroup is a condition tree node: exactly one of All
// (conjunction) or Any (disjunction) is populated. A group with
// neither is inert and never matches.
type ConditionGroup struct {
	All []Condition `json:"all,omitempty" yaml:"all,omitempty"`
	Any []Condition `json:"any,omitempty" yaml:"any,omitempty"`
}

// Conditions returns the group's condition list regardless of which
// form it takes, preferring All.
func (g ConditionGroup) Conditions() []Condition {
	if len(g.All) > 0 {
		return g.All
	}
	return g.Any
}

// Rule is a declarative vote for one semantic category. Rules are
// loaded once at startup, form an ordered sequence, and are evaluated
// independently per analysis call. Description, ExpectedConditions and
// RecommendedTreatment are advisory metadata carried through to the
// result; they play no part in matching.
type Rule struct {
	Label                string          `json:"label" yaml:"label"`
	When                 ConditionGroup  `json:"when" yaml:"when"`
	Not                  *ConditionGroup `json:"not,omitempty" yaml:"not,omitempty"`
	MinSignals           int             `json:"min_signals,omitempty" yaml:"min_signals,omitempty"`
	Priority             int             `json:"priority,omitempty" yaml:"priority,omitempty"`
	Description          string          `json:"description,omitempty" yaml:"description,omitempty"`
	ExpectedConditions   []string        `json:"expected_conditions,omitempty" yaml:"expected_conditions,omitempty"`
	RecommendedTreatment []string        `json:"recommended_treatment,omitempty" yaml:"recommended_treatment,omitempty"`
}
