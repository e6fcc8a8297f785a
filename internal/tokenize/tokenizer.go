// Package tokenize splits raw column names into normalized tokens
// suitable for dictionary-based signal detection.
package tokenize

import "regexp"

var (
	snakeSplit = regexp.MustCompile(`_+`)
	camelSplit = regexp.MustCompile(`[A-Z]+[a-z0-9]*|[a-z0-9]+`)
)

// Tokenizer splits a column name into raw tokens based on naming
// conventions: snake_case runs first, then camelCase / PascalCase
// boundaries within each part.
//
//	"userCreatedAt"  -> ["user", "Created", "At"]
//	"TOTAL_AMT_USD"  -> ["TOTAL", "AMT", "USD"]
type Tokenizer struct{}

// NewTokenizer creates a new tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits a column name into raw components. An empty name
// yields no tokens.
func (t *Tokenizer) Tokenize(columnName string) []string {
	if columnName == "" {
		return nil
	}

	var tokens []string
	for _, part := range snakeSplit.Split(columnName, -1) {
		if part == "" {
			continue
		}
		tokens = append(tokens, splitCamel(part)...)
	}
	return tokens
}

// splitCamel splits a single snake-free part on case boundaries.
// Runs of uppercase letters stay together, so "USD" is one token.
func splitCamel(part string) []string {
	matches := camelSplit.FindAllString(part, -1)
	if len(matches) == 0 {
		return []string{part}
	}
	return matches
}
