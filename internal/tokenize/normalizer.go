package tokenize

import "strings"

// Normalizer lowercases, trims and stopword-filters raw tokens into
// the canonical form consumed by the detectors. The stopword set is
// injected at construction (no ambient state).
type Normalizer struct {
	stopwords map[string]struct{}
}

// NewNormalizer creates a normalizer with the given stopword set.
func NewNormalizer(stopwords []string) *Normalizer {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Normalizer{stopwords: set}
}

// Normalize lowercases and trims each token, dropping empties and
// stopwords. Order is preserved.
func (n *Normalizer) Normalize(tokens []string) []string {
	var normalized []string
	for _, token := range tokens {
		clean := strings.ToLower(strings.TrimSpace(token))
		if clean == "" {
			continue
		}
		if _, stop := n.stopwords[clean]; stop {
			continue
		}
		normalized = append(normalized, clean)
	}
	return normalized
}
