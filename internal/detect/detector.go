// Package detect turns normalized column-name tokens into typed
// signals via dictionary lookup. Detectors are stateless beyond their
// immutable knowledge maps and safe for concurrent use.
package detect

import "github.com/pshenichny/columella/internal/model"

// Detector extracts signals of one category from normalized tokens.
type Detector interface {
	Detect(tokens []string) []model.Signal
}

// AbbreviationDetector recognizes known abbreviations (amt, qty, ...).
type AbbreviationDetector struct {
	knowledge map[string]string
}

// NewAbbreviationDetector creates a detector over an
// abbreviation -> meaning dictionary.
func NewAbbreviationDetector(knowledge map[string]string) *AbbreviationDetector {
	return &AbbreviationDetector{knowledge: knowledge}
}

func (d *AbbreviationDetector) Detect(tokens []string) []model.Signal {
	var signals []model.Signal
	for _, token := range tokens {
		if meaning, ok := d.knowledge[token]; ok {
			signals = append(signals, model.Signal{
				Type:    model.SignalAbbreviation,
				Token:   token,
				Meaning: meaning,
			})
		}
	}
	return signals
}

// DateDetector recognizes date-related tokens (created, updated, ...).
type DateDetector struct {
	knowledge map[string]string
}

// NewDateDetector creates a detector over a token -> date semantic
// dictionary.
func NewDateDetector(knowledge map[string]string) *DateDetector {
	return &DateDetector{knowledge: knowledge}
}

func (d *DateDetector) Detect(tokens []string) []model.Signal {
	var signals []model.Signal
	for _, token := range tokens {
		if semantic, ok := d.knowledge[token]; ok {
			signals = append(signals, model.Signal{
				Type:  model.SignalDate,
				Token: token,
				Value: semantic,
			})
		}
	}
	return signals
}

// CurrencyDetector recognizes currency codes and currency words.
type CurrencyDetector struct {
	knowledge map[string]string
}

// NewCurrencyDetector creates a detector over a token -> currency
// dictionary.
func NewCurrencyDetector(knowledge map[string]string) *CurrencyDetector {
	return &CurrencyDetector{knowledge: knowledge}
}

func (d *CurrencyDetector) Detect(tokens []string) []model.Signal {
	var signals []model.Signal
	for _, token := range tokens {
		if currency, ok := d.knowledge[token]; ok {
			signals = append(signals, model.Signal{
				Type:     model.SignalCurrency,
				Token:    token,
				Currency: currency,
			})
		}
	}
	return signals
}

// RoleDetector recognizes the business or analytical role of a column
// (identifier, metric, flag, ...).
type RoleDetector struct {
	knowledge map[string]string
}

// NewRoleDetector creates a detector over a token -> role dictionary.
func NewRoleDetector(knowledge map[string]string) *RoleDetector {
	return &RoleDetector{knowledge: knowledge}
}

func (d *RoleDetector) Detect(tokens []string) []model.Signal {
	var signals []model.Signal
	for _, token := range tokens {
		if role, ok := d.knowledge[token]; ok {
			signals = append(signals, model.Signal{
				Type:  model.SignalRole,
				Token: token,
				Role:  role,
			})
		}
	}
	return signals
}

// DataTypeDetector recognizes likely data types from naming
// conventions (is_/has_ prefixes, count, timestamp suffixes, ...).
type DataTypeDetector struct {
	knowledge map[string]string
}

// NewDataTypeDetector creates a detector over a token -> data type
// dictionary.
func NewDataTypeDetector(knowledge map[string]string) *DataTypeDetector {
	return &DataTypeDetector{knowledge: knowledge}
}

func (d *DataTypeDetector) Detect(tokens []string) []model.Signal {
	var signals []model.Signal
	for _, token := range tokens {
		if dataType, ok := d.knowledge[token]; ok {
			signals = append(signals, model.Signal{
				Type:     model.SignalDataType,
				Token:    token,
				DataType: dataType,
			})
		}
	}
	return signals
}
