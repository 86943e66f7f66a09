package Format

import "testing"

func TestEuro(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "0,00 €"},
		{"small", 45, "45,00 €"},
		{"decimal", 332.5, "332,50 €"},
		{"thousands", 1234.56, "1.234,56 €"},
		{"millions", 1234567.89, "1.234.567,89 €"},
		{"negative credit", -200, "-200,00 €"},
		{"rounding", 0.005, "0,01 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Euro(tt.amount); got != tt.want {
				t.Errorf("Euro(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{1000, "1.000,00"},
		{999, "999,00"},
		{15, "15,00"},
		{-1234.5, "-1.234,50"},
	}

	for _, tt := range tests {
		if got := Number(tt.amount); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain integer", "3", 3, true},
		{"integer with unit", "3 Stk", 3, true},
		{"comma decimal", "2,5 m²", 2.5, true},
		{"dot decimal", "2.5m", 2.5, true},
		{"no space before unit", "12kg", 12, true},
		{"trailing separator", "5, Stk", 5, true},
		{"whitespace around", "  4 Stk  ", 4, true},
		{"empty", "", 0, false},
		{"no leading number", "pauschal", 0, false},
		{"unit before number", "ca. 5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseQuantity(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseQuantity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
