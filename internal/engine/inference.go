package engine

import (
	"sort"

	"github.com/pshenichny/columella/internal/model"
)

// InferenceEngine orchestrates rule evaluation for one column and
// resolves competing hypotheses into a final deduplicated, ranked
// result. It holds only immutable configuration; every call is a pure
// function of its inputs.
type InferenceEngine struct {
	rules *RulesEngine
}

// NewInferenceEngine creates an inference engine on top of a rules
// engine.
func NewInferenceEngine(rules *RulesEngine) *InferenceEngine {
	return &InferenceEngine{rules: rules}
}

// Infer evaluates all rules against the signals and returns the final
// result for the column: hypotheses deduplicated by label and sorted
// descending by (priority, confidence).
func (e *InferenceEngine) Infer(columnName string, signals []model.Signal) *model.InferenceResult {
	raw := e.rules.Evaluate(signals)

	return &model.InferenceResult{
		ColumnName: columnName,
		Hypotheses: postProcess(raw),
	}
}

// postProcess deduplicates hypotheses by label, keeping the one with
// the greater (priority, confidence) tuple, then sorts the survivors
// by the same key. Priority takes strict precedence: a priority-2
// hypothesis at confidence 0.3 beats a priority-1 one at 0.9.
func postProcess(hypotheses []model.SemanticHypothesis) []model.SemanticHypothesis {
	unique := make(map[string]model.SemanticHypothesis, len(hypotheses))
	order := make([]string, 0, len(hypotheses))

	for _, h := range hypotheses {
		existing, ok := unique[h.Label]
		if !ok {
			unique[h.Label] = h
			order = append(order, h.Label)
			continue
		}
		if h.RankKey(existing) > 0 {
			unique[h.Label] = h
		}
	}

	result := make([]model.SemanticHypothesis, 0, len(unique))
	for _, label := range order {
		result = append(result, unique[label])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RankKey(result[j]) > 0
	})

	return result
}
