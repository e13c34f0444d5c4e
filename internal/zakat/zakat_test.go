package zakat

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalculate(t *testing.T) {
	prices := Prices{GoldPerGram: 100, SilverPerGram: 1}

	tests := []struct {
		name       string
		assets     Assets
		basis      Basis
		wantNet    float64
		wantNisab  float64
		wantDue    bool
		wantAmount float64
	}{
		{
			name:      "below gold nisab",
			assets:    Assets{Cash: 5000},
			basis:     Gold,
			wantNet:   5000,
			wantNisab: 8748,
		},
		{
			name:       "above gold nisab",
			assets:     Assets{Cash: 6000, Savings: 4000},
			basis:      Gold,
			wantNet:    10000,
			wantNisab:  8748,
			wantDue:    true,
			wantAmount: 250,
		},
		{
			name:       "exactly at nisab",
			assets:     Assets{Cash: GoldNisabGrams * 100},
			basis:      Gold,
			wantNet:    8748,
			wantNisab:  8748,
			wantDue:    true,
			wantAmount: 218.7,
		},
		{
			name:       "silver basis is lower",
			assets:     Assets{Cash: 5000},
			basis:      Silver,
			wantNet:    5000,
			wantNisab:  612.36,
			wantDue:    true,
			wantAmount: 125,
		},
		{
			name:       "metals and liabilities",
			assets:     Assets{Cash: 1000, Investments: 2000, GoldGrams: 100, SilverGrams: 500, Liabilities: 1500},
			basis:      Gold,
			wantNet:    12000,
			wantNisab:  8748,
			wantDue:    true,
			wantAmount: 300,
		},
		{
			name:      "liabilities exceed assets",
			assets:    Assets{Cash: 100, Liabilities: 500},
			basis:     Silver,
			wantNet:   -400,
			wantNisab: 612.36,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Calculate(tt.assets, prices, tt.basis)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(r.Net, tt.wantNet) {
				t.Errorf("Net = %v, want %v", r.Net, tt.wantNet)
			}
			if !approx(r.Nisab, tt.wantNisab) {
				t.Errorf("Nisab = %v, want %v", r.Nisab, tt.wantNisab)
			}
			if r.Due != tt.wantDue {
				t.Errorf("Due = %v, want %v", r.Due, tt.wantDue)
			}
			if !approx(r.Amount, tt.wantAmount) {
				t.Errorf("Amount = %v, want %v", r.Amount, tt.wantAmount)
			}
			if r.Basis != tt.basis {
				t.Errorf("Basis = %q, want %q", r.Basis, tt.basis)
			}
		})
	}
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		assets Assets
		prices Prices
		basis  Basis
	}{
		{"negative cash", Assets{Cash: -1}, Prices{GoldPerGram: 100}, Gold},
		{"negative liabilities", Assets{Liabilities: -5}, Prices{GoldPerGram: 100}, Gold},
		{"negative gold grams", Assets{GoldGrams: -2}, Prices{GoldPerGram: 100}, Gold},
		{"negative price", Assets{}, Prices{GoldPerGram: -100}, Gold},
		{"missing gold price", Assets{Cash: 100}, Prices{SilverPerGram: 1}, Gold},
		{"missing silver price", Assets{Cash: 100}, Prices{GoldPerGram: 100}, Silver},
		{"unknown basis", Assets{}, Prices{GoldPerGram: 100}, Basis("platinum")},
		{"gold held without gold price", Assets{GoldGrams: 1000}, Prices{SilverPerGram: 1}, Silver},
		{"silver held without silver price", Assets{SilverGrams: 1000}, Prices{GoldPerGram: 100}, Gold},
		{"NaN cash", Assets{Cash: math.NaN()}, Prices{GoldPerGram: 100}, Gold},
		{"infinite savings", Assets{Savings: math.Inf(1)}, Prices{GoldPerGram: 100}, Gold},
		{"infinite liabilities", Assets{Liabilities: math.Inf(-1)}, Prices{GoldPerGram: 100}, Gold},
		{"NaN gold price", Assets{Cash: 100}, Prices{GoldPerGram: math.NaN()}, Gold},
		{"infinite silver price", Assets{Cash: 100}, Prices{SilverPerGram: math.Inf(1)}, Silver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Calculate(tt.assets, tt.prices, tt.basis); err == nil {
				t.Fatal("expected an error, got nil")
			}
		})
	}
}

func TestCalculate_OtherMetalPriced(t *testing.T) {
	r, err := Calculate(Assets{GoldGrams: 10}, Prices{GoldPerGram: 100, SilverPerGram: 1}, Silver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(r.GoldValue, 1000) || !r.Due {
		t.Errorf("GoldValue = %v, Due = %v, want 1000 and due", r.GoldValue, r.Due)
	}
}

func TestParseBasis(t *testing.T) {
	tests := []struct {
		in      string
		want    Basis
		wantErr bool
	}{
		{"gold", Gold, false},
		{"Silver", Silver, false},
		{" GOLD ", Gold, false},
		{"platinum", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBasis(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBasis(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBasis(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBasisGrams(t *testing.T) {
	if Gold.Grams() != GoldNisabGrams || Silver.Grams() != SilverNisabGrams {
		t.Errorf("Grams() = %v/%v", Gold.Grams(), Silver.Grams())
	}
}
