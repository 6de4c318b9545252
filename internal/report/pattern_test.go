package report

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantMatch   bool
		wantProduct Product
		wantDate    string
	}{
		{
			name:        "plain WB report",
			filename:    "Daily Hedging P&L Summary for WB 2024_06_28.msg",
			wantMatch:   true,
			wantProduct: ProductWB,
			wantDate:    "2024_06_28",
		},
		{
			name:        "plain DBIB report",
			filename:    "Daily Hedging P&L Summary for DBIB 2024_03_22.msg",
			wantMatch:   true,
			wantProduct: ProductDBIB,
			wantDate:    "2024_03_22",
		},
		{
			name:        "automatic reply prefix",
			filename:    "Automatic reply_ Daily Hedging P&L Summary for WB 2024_06_28.msg",
			wantMatch:   true,
			wantProduct: ProductWB,
			wantDate:    "2024_06_28",
		},
		{
			name:        "RE prefix",
			filename:    "RE_ Daily Hedging P&L Summary for DBIB 2024_05_01.msg",
			wantMatch:   true,
			wantProduct: ProductDBIB,
			wantDate:    "2024_05_01",
		},
		{
			name:        "FW prefix",
			filename:    "FW_ Daily Hedging P&L Summary for WB 2024_01_02.msg",
			wantMatch:   true,
			wantProduct: ProductWB,
			wantDate:    "2024_01_02",
		},
		{
			name:        "lowercase still matches",
			filename:    "daily hedging p&l summary for wb 2024_06_28.msg",
			wantMatch:   true,
			wantProduct: ProductWB,
			wantDate:    "2024_06_28",
		},
		{
			name:      "unrelated file",
			filename:  "random_notes.msg",
			wantMatch: false,
		},
		{
			name:      "unknown product",
			filename:  "Daily Hedging P&L Summary for XYZ 2024_06_28.msg",
			wantMatch: false,
		},
		{
			name:      "date with wrong separator",
			filename:  "Daily Hedging P&L Summary for WB 2024-06-28.msg",
			wantMatch: false,
		},
		{
			name:      "wrong extension",
			filename:  "Daily Hedging P&L Summary for WB 2024_06_28.eml",
			wantMatch: false,
		},
		{
			name:      "trailing text after date",
			filename:  "Daily Hedging P&L Summary for WB 2024_06_28 copy.msg",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := Parse(tt.filename)
			if ok != tt.wantMatch {
				t.Fatalf("Parse(%q) match = %v, want %v", tt.filename, ok, tt.wantMatch)
			}
			if !tt.wantMatch {
				return
			}
			if key.Product != tt.wantProduct {
				t.Errorf("Parse(%q) product = %q, want %q", tt.filename, key.Product, tt.wantProduct)
			}
			if key.Date != tt.wantDate {
				t.Errorf("Parse(%q) date = %q, want %q", tt.filename, key.Date, tt.wantDate)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	k := Key{Product: ProductWB, Date: "2024_06_28"}
	if got := k.String(); got != "WB 2024_06_28" {
		t.Errorf("Key.String() = %q", got)
	}
}
