// Package knowledge loads the static dictionaries and declarative
// rules that drive semantic inference. Knowledge is loaded once at
// startup and immutable afterwards; a missing or structurally invalid
// file is a fatal configuration error, not a per-call one.
package knowledge

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pshenichny/columella/internal/model"
)

//go:embed defaults/*.yml
var defaultsFS embed.FS

// dictionary file names expected in a knowledge directory.
const (
	fileAbbreviations = "abbreviations.yml"
	fileCurrencies    = "currencies.yml"
	fileDates         = "dates.yml"
	fileRoles         = "roles.yml"
	fileDataTypes     = "data_types.yml"
	fileStopwords     = "stopwords.yml"
	fileRules         = "rules.yml"
)

// Base holds all semantic knowledge used for column inference:
// five token dictionaries, categorized stopwords, and the ordered
// rule list.
type Base struct {
	Abbreviations map[string]string
	Currencies    map[string]string
	Dates         map[string]string
	Roles         map[string]string
	DataTypes     map[string]string
	Stopwords     map[string][]string
	Rules         []model.Rule
}

// FlatStopwords flattens the categorized stopwords into one sorted
// list.
func (b *Base) FlatStopwords() []string {
	set := make(map[string]struct{})
	for _, group := range b.Stopwords {
		for _, w := range group {
			set[w] = struct{}{}
		}
	}
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Default returns the built-in knowledge base embedded in the binary.
func Default() (*Base, error) {
	return load(func(name string) ([]byte, error) {
		return defaultsFS.ReadFile("defaults/" + name)
	})
}

// Load reads a knowledge base from a directory containing the seven
// expected YAML files.
func Load(dir string) (*Base, error) {
	return load(func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("knowledge file not found: %s: %w", name, err)
		}
		return data, nil
	})
}

func load(read func(name string) ([]byte, error)) (*Base, error) {
	base := &Base{}

	dicts := []struct {
		file string
		dst  *map[string]string
	}{
		{fileAbbreviations, &base.Abbreviations},
		{fileCurrencies, &base.Currencies},
		{fileDates, &base.Dates},
		{fileRoles, &base.Roles},
		{fileDataTypes, &base.DataTypes},
	}

	for _, d := range dicts {
		data, err := read(d.file)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, d.dst); err != nil {
			return nil, fmt.Errorf("invalid YAML structure in %s: %w", d.file, err)
		}
		if *d.dst == nil {
			return nil, fmt.Errorf("invalid YAML structure in %s: expected a mapping", d.file)
		}
	}

	stopData, err := read(fileStopwords)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(stopData, &base.Stopwords); err != nil {
		return nil, fmt.Errorf("invalid YAML structure in %s: %w", fileStopwords, err)
	}

	ruleData, err := read(fileRules)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(ruleData, &base.Rules); err != nil {
		return nil, fmt.Errorf("invalid YAML structure in %s: expected a list of rules: %w", fileRules, err)
	}
	if len(base.Rules) == 0 {
		return nil, fmt.Errorf("%s contains no rules", fileRules)
	}
	for i, rule := range base.Rules {
		if rule.Label == "" {
			return nil, fmt.Errorf("%s: rule %d has no label", fileRules, i)
		}
	}

	return base, nil
}

// Export writes the embedded default knowledge files into dir,
// creating it if needed. Used by `columella knowledge init` so users
// can customize dictionaries and rules.
func Export(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create knowledge directory: %w", err)
	}
	names := []string{
		fileAbbreviations, fileCurrencies, fileDates,
		fileRoles, fileDataTypes, fileStopwords, fileRules,
	}
	for _, name := range names {
		data, err := defaultsFS.ReadFile("defaults/" + name)
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", name, err)
		}
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("refusing to overwrite existing file: %s", target)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
