package engine

import (
	"github.com/pshenichny/columella/internal/model"
)

// MaxConfidence is the hard cap applied once evidence volume makes
// near-certainty claims implausible (3 or more items).
const MaxConfidence = 0.95

// DefaultWeight is the per-item base weight for unrecognized signal types.
const DefaultWeight = 0.1

// typePair is an unordered pair of signal types. Construct via pairOf
// so lookup is order-independent.
type typePair struct {
	a, b string
}

func pairOf(a, b string) typePair {
	if a > b {
		a, b = b, a
	}
	return typePair{a, b}
}

// ConfidenceEngine turns a flat evidence list into a single confidence
// score. Weights are summed once per evidence item, so repeated
// evidence of the same type increases the score; combination bonuses
// are awarded once per distinct-type pair.
type ConfidenceEngine struct {
	weights map[string]float64
	bonuses map[typePair]float64
}

// NewConfidenceEngine creates a confidence engine with the default
// weight and combination-bonus tables.
func NewConfidenceEngine() *ConfidenceEngine {
	return &ConfidenceEngine{
		weights: map[string]float64{
			model.SignalAbbreviation: 0.50,
			model.SignalCurrency:     0.45,
			model.SignalDate:         0.60,
			model.SignalRole:         0.40,
			model.SignalDataType:     0.30,
		},
		bonuses: map[typePair]float64{
			pairOf(model.SignalAbbreviation, model.SignalCurrency): 0.25,
			pairOf(model.SignalRole, model.SignalDataType):         0.20,
			pairOf(model.SignalDate, model.SignalDataType):         0.15,
			pairOf(model.SignalAbbreviation, model.SignalRole):     0.30,
			pairOf(model.SignalAbbreviation, model.SignalDate):     0.25,
		},
	}
}

// Score computes the confidence for an evidence list.
//
// base = sum of per-item type weights, then an additive bonus for each
// predefined pair of types present among the distinct types. The
// MaxConfidence cap applies only when the evidence list has 3 or more
// items: a 2-item match can legitimately score above 0.95 (even above
// 1.0 with a combination bonus), and that is deliberately left
// unclamped rather than silently "fixed".
func (e *ConfidenceEngine) Score(evidence []model.Signal) float64 {
	if len(evidence) == 0 {
		return 0.0
	}

	base := 0.0
	types := make(map[string]struct{})
	for _, sig := range evidence {
		if sig.Type == "" {
			// Malformed signal: contributes nothing.
			continue
		}
		types[sig.Type] = struct{}{}
		weight, ok := e.weights[sig.Type]
		if !ok {
			weight = DefaultWeight
		}
		base += weight
	}

	score := base + e.combinationBonus(types)

	if len(evidence) >= 3 && score > MaxConfidence {
		score = MaxConfidence
	}
	return score
}

// combinationBonus sums the bonuses of every predefined pair fully
// present among the distinct evidence types.
func (e *ConfidenceEngine) combinationBonus(types map[string]struct{}) float64 {
	bonus := 0.0
	for pair, b := range e.bonuses {
		if _, ok := types[pair.a]; !ok {
			continue
		}
		if _, ok := types[pair.b]; !ok {
			continue
		}
		bonus += b
	}
	return bonus
}
