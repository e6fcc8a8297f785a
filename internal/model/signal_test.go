package model

import "testing"

func TestSignal_CanonicalValue(t *testing.T) {
	tests := []struct {
		name   string
		signal Signal
		want   string
	}{
		{
			name:   "abbreviation uses meaning",
			signal: Signal{Type: SignalAbbreviation, Token: "amt", Meaning: "amount"},
			want:   "amount",
		},
		{
			name:   "currency uses currency",
			signal: Signal{Type: SignalCurrency, Token: "usd", Currency: "USD"},
			want:   "USD",
		},
		{
			name:   "role uses role",
			signal: Signal{Type: SignalRole, Token: "id", Role: "identifier"},
			want:   "identifier",
		},
		{
			name:   "data_type uses data_type",
			signal: Signal{Type: SignalDataType, Token: "is", DataType: "boolean"},
			want:   "boolean",
		},
		{
			name:   "date uses the generic value slot",
			signal: Signal{Type: SignalDate, Token: "created", Value: "creation_timestamp"},
			want:   "creation_timestamp",
		},
		{
			name:   "unknown type falls back to value",
			signal: Signal{Type: "geolocation", Token: "lat", Value: "latitude"},
			want:   "latitude",
		},
		{
			name:   "unset canonical field is empty",
			signal: Signal{Type: SignalAbbreviation, Token: "amt"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.signal.CanonicalValue(); got != tt.want {
				t.Errorf("CanonicalValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignal_ResolveValue(t *testing.T) {
	tests := []struct {
		name   string
		signal Signal
		want   string
		wantOK bool
	}{
		{
			name:   "role prefers role over token",
			signal: Signal{Type: SignalRole, Token: "id", Role: "identifier"},
			want:   "identifier",
			wantOK: true,
		},
		{
			name:   "role falls back to token",
			signal: Signal{Type: SignalRole, Token: "id"},
			want:   "id",
			wantOK: true,
		},
		{
			name:   "currency prefers currency code",
			signal: Signal{Type: SignalCurrency, Token: "usd", Currency: "USD"},
			want:   "USD",
			wantOK: true,
		},
		{
			name:   "abbreviation prefers token over meaning",
			signal: Signal{Type: SignalAbbreviation, Token: "pk", Meaning: "primary key"},
			want:   "pk",
			wantOK: true,
		},
		{
			name:   "unknown type uses the default order",
			signal: Signal{Type: "geolocation", Token: "lat", Value: "latitude"},
			want:   "lat",
			wantOK: true,
		},
		{
			name:   "no populated fields",
			signal: Signal{Type: SignalRole},
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.signal.ResolveValue()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolveValue() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSignal_Field(t *testing.T) {
	s := Signal{Type: SignalDate, Token: "created", Value: "creation_timestamp"}

	if v, ok := s.Field("token"); !ok || v != "created" {
		t.Errorf("Field(token) = (%q, %v), want (created, true)", v, ok)
	}
	if _, ok := s.Field("meaning"); ok {
		t.Error("Expected unset meaning field to report not set")
	}
	if _, ok := s.Field("nonexistent"); ok {
		t.Error("Expected unknown field name to report not set")
	}
}
