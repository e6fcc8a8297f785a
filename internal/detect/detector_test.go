package detect

import (
	"reflect"
	"testing"

	"github.com/pshenichny/columella/internal/model"
)

func TestAbbreviationDetector(t *testing.T) {
	d := NewAbbreviationDetector(map[string]string{
		"amt": "amount",
		"qty": "quantity",
	})

	got := d.Detect([]string{"total", "amt", "usd"})
	want := []model.Signal{
		{Type: model.SignalAbbreviation, Token: "amt", Meaning: "amount"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestDateDetector(t *testing.T) {
	d := NewDateDetector(map[string]string{
		"created": "creation_timestamp",
		"updated": "modification_timestamp",
	})

	got := d.Detect([]string{"created", "updated", "by"})
	want := []model.Signal{
		{Type: model.SignalDate, Token: "created", Value: "creation_timestamp"},
		{Type: model.SignalDate, Token: "updated", Value: "modification_timestamp"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestCurrencyDetector(t *testing.T) {
	d := NewCurrencyDetector(map[string]string{
		"usd":   "USD",
		"price": "unspecified",
	})

	got := d.Detect([]string{"price", "usd"})
	want := []model.Signal{
		{Type: model.SignalCurrency, Token: "price", Currency: "unspecified"},
		{Type: model.SignalCurrency, Token: "usd", Currency: "USD"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestRoleDetector(t *testing.T) {
	d := NewRoleDetector(map[string]string{
		"id":   "identifier",
		"user": "entity",
	})

	got := d.Detect([]string{"user", "id"})
	want := []model.Signal{
		{Type: model.SignalRole, Token: "user", Role: "entity"},
		{Type: model.SignalRole, Token: "id", Role: "identifier"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestDataTypeDetector(t *testing.T) {
	d := NewDataTypeDetector(map[string]string{
		"is":     "boolean",
		"amount": "decimal",
	})

	got := d.Detect([]string{"is", "active"})
	want := []model.Signal{
		{Type: model.SignalDataType, Token: "is", DataType: "boolean"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %v, want %v", got, want)
	}
}

func TestDetectors_NoMatchesYieldNil(t *testing.T) {
	detectors := []Detector{
		NewAbbreviationDetector(map[string]string{"amt": "amount"}),
		NewDateDetector(map[string]string{"created": "creation_timestamp"}),
		NewCurrencyDetector(map[string]string{"usd": "USD"}),
		NewRoleDetector(map[string]string{"id": "identifier"}),
		NewDataTypeDetector(map[string]string{"is": "boolean"}),
	}

	for i, d := range detectors {
		if got := d.Detect([]string{"zzz", "unknown"}); got != nil {
			t.Errorf("Detector %d: expected nil for unknown tokens, got %v", i, got)
		}
		if got := d.Detect(nil); got != nil {
			t.Errorf("Detector %d: expected nil for no tokens, got %v", i, got)
		}
	}
}

func TestDetectors_RepeatedTokensProduceRepeatedSignals(t *testing.T) {
	d := NewRoleDetector(map[string]string{"id": "identifier"})

	got := d.Detect([]string{"id", "id"})
	if len(got) != 2 {
		t.Errorf("Expected one signal per token occurrence, got %d", len(got))
	}
}
