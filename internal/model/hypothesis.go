package model

// SemanticHypothesis is one rule's claim about a column's semantic
// category, with the evidence that produced it. Created once per
// inference call and never mutated afterwards.
type SemanticHypothesis struct {
	Label                string   `json:"label" yaml:"label"`
	Confidence           float64  `json:"confidence" yaml:"confidence"`
	Priority             int      `json:"priority,omitempty" yaml:"priority,omitempty"`
	Description          string   `json:"description,omitempty" yaml:"description,omitempty"`
	ExpectedConditions   []string `json:"expected_conditions,omitempty" yaml:"expected_conditions,omitempty"`
	RecommendedTreatment []string `json:"recommended_treatment,omitempty" yaml:"recommended_treatment,omitempty"`
	Evidence             []Signal `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// RankKey compares two hypotheses by (priority, confidence), priority
// strictly first. Returns >0 if h outranks other, <0 if other outranks
// h, 0 on a full tie.
func (h SemanticHypothesis) RankKey(other SemanticHypothesis) int {
	if h.Priority != other.Priority {
		if h.Priority > other.Priority {
			return 1
		}
		return -1
	}
	switch {
	case h.Confidence > other.Confidence:
		return 1
	case h.Confidence < other.Confidence:
		return -1
	}
	return 0
}

// AmbiguityWindow is the confidence distance below which two
// equal-priority hypotheses are considered too close to prefer one.
const AmbiguityWindow = 0.15

// InferenceResult is the outcome of analyzing one column name:
// a ranked, label-deduplicated sequence of hypotheses. Read-only
// after construction.
type InferenceResult struct {
	ColumnName string               `json:"column_name" yaml:"column_name"`
	Hypotheses []SemanticHypothesis `json:"hypotheses" yaml:"hypotheses"`
}

// Best returns the hypothesis maximizing (priority, confidence), or
// nil if there are none. Hypotheses are stored ranked, so this is the
// first entry.
func (r *InferenceResult) Best() *SemanticHypothesis {
	if len(r.Hypotheses) == 0 {
		return nil
	}
	return &r.Hypotheses[0]
}

// IsAmbiguous reports whether the top two hypotheses are too close to
// prefer one: they must share equal priority AND differ in confidence
// by less than AmbiguityWindow. A priority difference alone, however
// small the confidence gap, is never ambiguous.
func (r *InferenceResult) IsAmbiguous() bool {
	if len(r.Hypotheses) < 2 {
		return false
	}
	first, second := r.Hypotheses[0], r.Hypotheses[1]
	if first.Priority != second.Priority {
		return false
	}
	diff := first.Confidence - second.Confidence
	if diff < 0 {
		diff = -diff
	}
	return diff < AmbiguityWindow
}

// Recommendations returns the recommended treatment of the best
// hypothesis, or nil if there are no hypotheses.
func (r *InferenceResult) Recommendations() []string {
	if best := r.Best(); best != nil {
		return best.RecommendedTreatment
	}
	return nil
}

// ExpectedConditions returns the data-quality expectations of the best
// hypothesis, or nil if there are no hypotheses.
func (r *InferenceResult) ExpectedConditions() []string {
	if best := r.Best(); best != nil {
		return best.ExpectedConditions
	}
	return nil
}
