package catalog

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{12950, "$129.50"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.cents); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"129", 12900, false},
		{"129.5", 12950, false},
		{"$129.50", 12950, false},
		{" .99 ", 99, false},
		{"12.345", 0, true},
		{"12.", 0, true},
		{"abc", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePrice(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("ParsePrice(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindLabel(t *testing.T) {
	if KindWarranty.Label() != "Warranty" {
		t.Fatalf("unexpected label %q", KindWarranty.Label())
	}
	if Kind("").Label() != "" {
		t.Fatal("empty kind should have empty label")
	}
	if Kind("color").Valid() {
		t.Fatal("unknown kind should be invalid")
	}
}
