package engine

import (
	"testing"

	"github.com/pshenichny/columella/internal/model"
)

func strPtr(s string) *string {
	return &s
}

func TestNewRulesEngine_EmptyRulesIsError(t *testing.T) {
	if _, err := NewRulesEngine(nil, nil); err == nil {
		t.Fatal("Expected error for empty rule list, got nil")
	}
	if _, err := NewRulesEngine([]model.Rule{}, NewConfidenceEngine()); err == nil {
		t.Fatal("Expected error for empty rule slice, got nil")
	}
}

func TestNewRulesEngine_NilConfidenceUsesDefault(t *testing.T) {
	rules := []model.Rule{{
		Label: "date",
		When:  model.ConditionGroup{Any: []model.Condition{{Signal: model.SignalDate}}},
	}}

	eng, err := NewRulesEngine(rules, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := eng.Evaluate([]model.Signal{{Type: model.SignalDate, Token: "created"}})
	if len(got) != 1 {
		t.Fatalf("Expected 1 hypothesis, got %d", len(got))
	}
	if !almostEqual(got[0].Confidence, 0.60) {
		t.Errorf("Expected default date weight 0.60, got %v", got[0].Confidence)
	}
}

func TestRulesEngine_AllRequiresEveryCondition(t *testing.T) {
	rules := []model.Rule{{
		Label: "monetary_amount",
		When: model.ConditionGroup{All: []model.Condition{
			{Signal: model.SignalCurrency},
			{Signal: model.SignalAbbreviation},
		}},
	}}
	eng, err := NewRulesEngine(rules, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Only one of the two required types present: no match.
	partial := eng.Evaluate([]model.Signal{{Type: model.SignalCurrency, Token: "usd", Currency: "USD"}})
	if len(partial) != 0 {
		t.Errorf("Expected no hypotheses with partial signals, got %d", len(partial))
	}

	full := eng.Evaluate([]model.Signal{
		{Type: model.SignalCurrency, Token: "usd", Currency: "USD"},
		{Type: model.SignalAbbreviation, Token: "amt", Meaning: "amount"},
	})
	if len(full) != 1 {
		t.Fatalf("Expected 1 hypothesis with full signals, got %d", len(full))
	}
	if full[0].Label != "monetary_amount" {
		t.Errorf("Expected label monetary_amount, got %s", full[0].Label)
	}
}

func TestRulesEngine_AnyRequiresOneCondition(t *testing.T) {
	rules := []model.Rule{{
		Label: "temporal",
		When: model.ConditionGroup{Any: []model.Condition{
			{Signal: model.SignalDate},
			{Signal: model.SignalDataType, Equals: strPtr("timestamp")},
		}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	got := eng.Evaluate([]model.Signal{{Type: model.SignalDate, Token: "updated"}})
	if len(got) != 1 {
		t.Fatalf("Expected 1 hypothesis, got %d", len(got))
	}

	none := eng.Evaluate([]model.Signal{{Type: model.SignalRole, Token: "id", Role: "identifier"}})
	if len(none) != 0 {
		t.Errorf("Expected no hypotheses, got %d", len(none))
	}
}

func TestRulesEngine_NotVeto(t *testing.T) {
	rules := []model.Rule{{
		Label: "monetary_amount",
		When:  model.ConditionGroup{Any: []model.Condition{{Signal: model.SignalCurrency}}},
		Not: &model.ConditionGroup{Any: []model.Condition{
			{Signal: model.SignalRole, Equals: strPtr("identifier")},
		}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	clean := eng.Evaluate([]model.Signal{{Type: model.SignalCurrency, Token: "usd", Currency: "USD"}})
	if len(clean) != 1 {
		t.Fatalf("Expected 1 hypothesis without veto, got %d", len(clean))
	}

	// The identifier role vetoes the currency match outright.
	vetoed := eng.Evaluate([]model.Signal{
		{Type: model.SignalCurrency, Token: "usd", Currency: "USD"},
		{Type: model.SignalRole, Token: "id", Role: "identifier"},
	})
	if len(vetoed) != 0 {
		t.Errorf("Expected veto to suppress the hypothesis, got %d", len(vetoed))
	}
}

func TestRulesEngine_MinSignalsThreshold(t *testing.T) {
	rules := []model.Rule{{
		Label:      "quantity",
		MinSignals: 2,
		When: model.ConditionGroup{All: []model.Condition{
			{Signal: model.SignalRole, Equals: strPtr("metric")},
			{Signal: model.SignalDataType},
		}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	got := eng.Evaluate([]model.Signal{
		{Type: model.SignalRole, Token: "quantity", Role: "metric"},
		{Type: model.SignalDataType, Token: "quantity", DataType: "integer"},
	})
	if len(got) != 1 {
		t.Fatalf("Expected hypothesis at min_signals threshold, got %d", len(got))
	}
	if len(got[0].Evidence) != 2 {
		t.Errorf("Expected 2 evidence items, got %d", len(got[0].Evidence))
	}
}

func TestRulesEngine_MinSignalsSuppressesThinEvidence(t *testing.T) {
	// min_signals above what the evidence scan can produce: the rule
	// matches but the hypothesis is suppressed.
	rules := []model.Rule{{
		Label:      "quantity",
		MinSignals: 3,
		When: model.ConditionGroup{All: []model.Condition{
			{Signal: model.SignalRole, Equals: strPtr("metric")},
			{Signal: model.SignalDataType},
		}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	got := eng.Evaluate([]model.Signal{
		{Type: model.SignalRole, Token: "quantity", Role: "metric"},
		{Type: model.SignalDataType, Token: "quantity", DataType: "integer"},
	})
	if len(got) != 0 {
		t.Errorf("Expected no hypotheses below min_signals, got %d", len(got))
	}
}

func TestRulesEngine_EqualsComparesCanonicalField(t *testing.T) {
	rules := []model.Rule{{
		Label: "identifier",
		When: model.ConditionGroup{Any: []model.Condition{
			{Signal: model.SignalRole, Equals: strPtr("identifier")},
		}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	// Canonical field of a role signal is Role, not Token.
	match := eng.Evaluate([]model.Signal{{Type: model.SignalRole, Token: "id", Role: "identifier"}})
	if len(match) != 1 {
		t.Fatalf("Expected equals to match the role field, got %d hypotheses", len(match))
	}

	// Equals against the token value does not match: only the
	// canonical field is compared.
	tokenRule := []model.Rule{{
		Label: "identifier",
		When: model.ConditionGroup{Any: []model.Condition{
			{Signal: model.SignalRole, Equals: strPtr("id")},
		}},
	}}
	eng2, _ := NewRulesEngine(tokenRule, nil)
	miss := eng2.Evaluate([]model.Signal{{Type: model.SignalRole, Token: "id", Role: "identifier"}})
	if len(miss) != 0 {
		t.Errorf("Expected equals on token value to miss, got %d hypotheses", len(miss))
	}
}

func TestRulesEngine_InUsesFieldPriorityLookup(t *testing.T) {
	signal := model.Signal{Type: model.SignalAbbreviation, Token: "pk", Meaning: "primary key"}

	// Abbreviation lookup starts at Token, so "pk" resolves and
	// matches.
	byToken := []model.Rule{{
		Label: "identifier",
		When: model.ConditionGroup{Any: []model.Condition{
			{Signal: model.SignalAbbreviation, In: []string{"pk", "fk", "uid"}},
		}},
	}}
	eng, _ := NewRulesEngine(byToken, nil)
	if got := eng.Evaluate([]model.Signal{signal}); len(got) != 1 {
		t.Fatalf("Expected in-lookup to resolve the token field, got %d hypotheses", len(got))
	}

	// The lookup resolves the FIRST populated field, not the first
	// field that happens to be in the list: with Token set, Meaning is
	// never consulted.
	byMeaning := []model.Rule{{
		Label: "identifier",
		When: model.ConditionGroup{Any: []model.Condition{
			{Signal: model.SignalAbbreviation, In: []string{"primary key"}},
		}},
	}}
	eng2, _ := NewRulesEngine(byMeaning, nil)
	if got := eng2.Evaluate([]model.Signal{signal}); len(got) != 0 {
		t.Errorf("Expected meaning to be shadowed by the token field, got %d hypotheses", len(got))
	}
}

func TestRulesEngine_BareConditionMatchesPresence(t *testing.T) {
	rules := []model.Rule{{
		Label: "date",
		When:  model.ConditionGroup{Any: []model.Condition{{Signal: model.SignalDate}}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	got := eng.Evaluate([]model.Signal{{Type: model.SignalDate, Token: "created", Value: "creation_timestamp"}})
	if len(got) != 1 {
		t.Errorf("Expected bare condition to match on presence, got %d hypotheses", len(got))
	}
}

func TestRulesEngine_MalformedRuleIsInert(t *testing.T) {
	rules := []model.Rule{
		{Label: "broken"}, // no when block at all
		{
			Label: "date",
			When:  model.ConditionGroup{Any: []model.Condition{{Signal: model.SignalDate}}},
		},
	}
	eng, err := NewRulesEngine(rules, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := eng.Evaluate([]model.Signal{{Type: model.SignalDate, Token: "created"}})
	if len(got) != 1 {
		t.Fatalf("Expected only the well-formed rule to fire, got %d hypotheses", len(got))
	}
	if got[0].Label != "date" {
		t.Errorf("Expected label date, got %s", got[0].Label)
	}
}

func TestRulesEngine_UnknownSignalTypeIsInert(t *testing.T) {
	rules := []model.Rule{{
		Label: "geo",
		When:  model.ConditionGroup{Any: []model.Condition{{Signal: "geolocation"}}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	got := eng.Evaluate([]model.Signal{{Type: model.SignalRole, Token: "id", Role: "identifier"}})
	if len(got) != 0 {
		t.Errorf("Expected no hypotheses for unreferenced condition type, got %d", len(got))
	}
}

func TestRulesEngine_EvidenceDuplicatesPreserved(t *testing.T) {
	// Two conditions over the same signal type: the single matching
	// signal is collected once per condition.
	rules := []model.Rule{{
		Label: "identifier",
		When: model.ConditionGroup{All: []model.Condition{
			{Signal: model.SignalRole, Equals: strPtr("identifier")},
			{Signal: model.SignalRole},
		}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	got := eng.Evaluate([]model.Signal{{Type: model.SignalRole, Token: "id", Role: "identifier"}})
	if len(got) != 1 {
		t.Fatalf("Expected 1 hypothesis, got %d", len(got))
	}
	if len(got[0].Evidence) != 2 {
		t.Errorf("Expected duplicated evidence (2 items), got %d", len(got[0].Evidence))
	}
	// 0.40 + 0.40, 2 items, uncapped.
	if !almostEqual(got[0].Confidence, 0.80) {
		t.Errorf("Expected confidence 0.80 from duplicated evidence, got %v", got[0].Confidence)
	}
}

func TestRulesEngine_SortsByPriorityThenConfidence(t *testing.T) {
	rules := []model.Rule{
		{
			Label:    "weak_high_conf",
			Priority: 1,
			When:     model.ConditionGroup{Any: []model.Condition{{Signal: model.SignalDate}}},
		},
		{
			Label:    "strong_low_conf",
			Priority: 3,
			When:     model.ConditionGroup{Any: []model.Condition{{Signal: model.SignalDataType}}},
		},
		{
			Label:    "mid",
			Priority: 2,
			When:     model.ConditionGroup{Any: []model.Condition{{Signal: model.SignalRole}}},
		},
	}
	eng, _ := NewRulesEngine(rules, nil)

	got := eng.Evaluate([]model.Signal{
		{Type: model.SignalDate, Token: "created"},
		{Type: model.SignalDataType, Token: "flag", DataType: "boolean"},
		{Type: model.SignalRole, Token: "status", Role: "state"},
	})
	if len(got) != 3 {
		t.Fatalf("Expected 3 hypotheses, got %d", len(got))
	}

	wantOrder := []string{"strong_low_conf", "mid", "weak_high_conf"}
	for i, want := range wantOrder {
		if got[i].Label != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, got[i].Label)
		}
	}
}

func TestRulesEngine_NoSignalsNoHypotheses(t *testing.T) {
	rules := []model.Rule{{
		Label: "date",
		When:  model.ConditionGroup{Any: []model.Condition{{Signal: model.SignalDate}}},
	}}
	eng, _ := NewRulesEngine(rules, nil)

	if got := eng.Evaluate(nil); len(got) != 0 {
		t.Errorf("Expected no hypotheses for nil signals, got %d", len(got))
	}
}
