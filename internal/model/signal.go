package model

// Signal type constants for the five known detector categories.
// Rules may reference arbitrary type strings; unknown types simply
// fall back to the default confidence weight and never match
// type-specific field lookups.
const (
	SignalAbbreviation = "abbreviation"
	SignalCurrency     = "currency"
	SignalDate         = "date"
	SignalRole         = "role"
	SignalDataType     = "data_type"
)

// Signal is a single typed observation derived from one token of a
// column name (e.g. token "usd" is a currency code). Signals are
// produced fresh per analysis call and never mutated afterwards.
//
// Different detectors populate different value fields: abbreviation
// detectors fill Meaning, currency detectors Currency, and so on.
// Value is the generic slot used by detectors without a dedicated
// field (the date detector stores its semantic there).
type Signal struct {
	Type     string `json:"type" yaml:"type"`
	Token    string `json:"token" yaml:"token"`
	Meaning  string `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
	Role     string `json:"role,omitempty" yaml:"role,omitempty"`
	DataType string `json:"data_type,omitempty" yaml:"data_type,omitempty"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
}

// canonicalFields maps a signal type to its primary value field name.
var canonicalFields = map[string]string{
	SignalAbbreviation: "meaning",
	SignalCurrency:     "currency",
	SignalRole:         "role",
	SignalDataType:     "data_type",
	SignalDate:         "value",
}

// lookupPriority maps a signal type to the ordered list of field names
// consulted when a rule condition tests membership with "in". Different
// detectors expose "the interesting value" under different names, so
// rules must be able to test across them uniformly.
var lookupPriority = map[string][]string{
	SignalRole:         {"role", "token", "meaning", "value"},
	SignalCurrency:     {"currency", "token", "meaning", "value"},
	SignalAbbreviation: {"token", "meaning", "role", "value"},
}

var defaultLookupPriority = []string{"token", "role", "currency", "meaning", "value"}

// Field returns the named value field and whether it is set.
func (s Signal) Field(name string) (string, bool) {
	var v string
	switch name {
	case "token":
		v = s.Token
	case "meaning":
		v = s.Meaning
	case "currency":
		v = s.Currency
	case "role":
		v = s.Role
	case "data_type":
		v = s.DataType
	case "value":
		v = s.Value
	}
	return v, v != ""
}

// CanonicalValue returns the signal's primary value field, used for
// exact-match (equals) conditions. Falls back to the generic Value
// slot for unknown signal types.
func (s Signal) CanonicalValue() string {
	name, ok := canonicalFields[s.Type]
	if !ok {
		name = "value"
	}
	v, _ := s.Field(name)
	return v
}

// ResolveValue returns the first populated field in the type's lookup
// priority order, used for membership (in) conditions.
func (s Signal) ResolveValue() (string, bool) {
	order, ok := lookupPriority[s.Type]
	if !ok {
		order = defaultLookupPriority
	}
	for _, name := range order {
		if v, set := s.Field(name); set {
			return v, true
		}
	}
	return "", false
}
