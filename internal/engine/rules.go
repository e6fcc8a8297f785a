package engine

import (
	"fmt"
	"sort"

	"github.com/pshenichny/columella/internal/model"
)

// RulesEngine evaluates every loaded rule against one column's signal
// set and produces the rules that fire, with their evidence. Rules are
// immutable after construction, so one engine may be shared by
// concurrent callers.
type RulesEngine struct {
	rules      []model.Rule
	confidence *ConfidenceEngine
}

// NewRulesEngine creates a rules engine. An empty rule list is a
// configuration error: there is nothing to infer.
func NewRulesEngine(rules []model.Rule, confidence *ConfidenceEngine) (*RulesEngine, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules engine requires at least one rule")
	}
	if confidence == nil {
		confidence = NewConfidenceEngine()
	}
	return &RulesEngine{rules: rules, confidence: confidence}, nil
}

// Rules returns the loaded rule set.
func (e *RulesEngine) Rules() []model.Rule {
	return e.rules
}

// Evaluate runs every rule in load order against the signals and
// returns the hypotheses of the rules that fired, sorted descending by
// (priority, confidence). Malformed rules and unknown signal types are
// inert, never errors.
func (e *RulesEngine) Evaluate(signals []model.Signal) []model.SemanticHypothesis {
	var hypotheses []model.SemanticHypothesis

	for _, rule := range e.rules {
		if !e.ruleMatches(rule, signals) {
			continue
		}

		evidence := collectEvidence(rule, signals)

		if rule.MinSignals > 0 && len(evidence) < rule.MinSignals {
			continue
		}

		hypotheses = append(hypotheses, model.SemanticHypothesis{
			Label:                rule.Label,
			Confidence:           e.confidence.Score(evidence),
			Priority:             rule.Priority,
			Description:          rule.Description,
			ExpectedConditions:   rule.ExpectedConditions,
			RecommendedTreatment: rule.RecommendedTreatment,
			Evidence:             evidence,
		})
	}

	sort.SliceStable(hypotheses, func(i, j int) bool {
		return hypotheses[i].RankKey(hypotheses[j]) > 0
	})

	return hypotheses
}

// ruleMatches evaluates the when block, then applies the not veto.
func (e *RulesEngine) ruleMatches(rule model.Rule, signals []model.Signal) bool {
	if !groupMatches(rule.When, signals) {
		return false
	}
	if rule.Not != nil && groupMatches(*rule.Not, signals) {
		return false
	}
	return true
}

// groupMatches evaluates a condition group: all conditions for All,
// at least one for Any. A group with neither form never matches.
func groupMatches(group model.ConditionGroup, signals []model.Signal) bool {
	if len(group.All) > 0 {
		for _, cond := range group.All {
			if !conditionMatches(cond, signals) {
				return false
			}
		}
		return true
	}
	if len(group.Any) > 0 {
		for _, cond := range group.Any {
			if conditionMatches(cond, signals) {
				return true
			}
		}
	}
	return false
}

// conditionMatches tests one condition against all signals. Given a
// signal of the right type: equals compares the canonical value field,
// in checks membership over the field-priority lookup, and a bare
// condition matches on type presence alone.
func conditionMatches(cond model.Condition, signals []model.Signal) bool {
	for _, sig := range signals {
		if sig.Type != cond.Signal {
			continue
		}

		if cond.Equals != nil {
			if sig.CanonicalValue() == *cond.Equals {
				return true
			}
		}

		if len(cond.In) > 0 {
			if value, ok := sig.ResolveValue(); ok {
				for _, candidate := range cond.In {
					if value == candidate {
						return true
					}
				}
			}
		}

		if cond.Equals == nil && len(cond.In) == 0 {
			return true
		}
	}
	return false
}

// collectEvidence re-scans the matched block's full condition list
// against all signals, appending every signal whose type matches a
// condition's type. A signal referenced by multiple conditions is
// collected multiple times: duplication reflects multiple lines of
// support and is preserved so repeated evidence weighs more.
func collectEvidence(rule model.Rule, signals []model.Signal) []model.Signal {
	var evidence []model.Signal
	for _, cond := range rule.When.Conditions() {
		for _, sig := range signals {
			if sig.Type == cond.Signal {
				evidence = append(evidence, sig)
			}
		}
	}
	return evidence
}
