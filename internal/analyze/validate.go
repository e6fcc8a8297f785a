package analyze

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateColumnNames rejects inputs that cannot meaningfully be
// analyzed: an empty list, blank names, or names with no alphanumeric
// characters. This is a fatal input error, surfaced before analysis.
func ValidateColumnNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("column name list cannot be empty")
	}

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("column name cannot be empty or blank")
		}
		if !containsAlnum(name) {
			return fmt.Errorf("invalid column name %q: no alphanumeric characters", name)
		}
	}
	return nil
}

func containsAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
