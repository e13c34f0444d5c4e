// Package zakat works out whether zakat is due on a set of assets and how
// much, using the gold or silver nisab.
package zakat

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Rate is the share of zakatable wealth that is due.
const Rate = 0.025

// Nisab thresholds in grams.
const (
	GoldNisabGrams   = 87.48
	SilverNisabGrams = 612.36
)

// Basis selects the metal the nisab is measured against.
type Basis string

const (
	Gold   Basis = "gold"
	Silver Basis = "silver"
)

// ParseBasis accepts "gold" or "silver" in any case.
func ParseBasis(s string) (Basis, error) {
	switch Basis(strings.ToLower(strings.TrimSpace(s))) {
	case Gold:
		return Gold, nil
	case Silver:
		return Silver, nil
	default:
		return "", fmt.Errorf("invalid nisab basis %q: must be \"gold\" or \"silver\"", s)
	}
}

// Grams returns the nisab weight for b.
func (b Basis) Grams() float64 {
	if b == Silver {
		return SilverNisabGrams
	}
	return GoldNisabGrams
}

// Assets are the holdings zakat is assessed on. Money values share one
// currency, the same one Prices are quoted in.
type Assets struct {
	Cash        float64 `json:"cash"`
	Savings     float64 `json:"savings"`
	Investments float64 `json:"investments"`
	GoldGrams   float64 `json:"goldGrams"`
	SilverGrams float64 `json:"silverGrams"`
	Liabilities float64 `json:"liabilities"`
}

// Prices are metal prices per gram.
type Prices struct {
	GoldPerGram   float64 `json:"goldPerGram"`
	SilverPerGram float64 `json:"silverPerGram"`
}

// Result is the outcome of Calculate.
type Result struct {
	Basis       Basis   `json:"basis"`
	GoldValue   float64 `json:"goldValue"`
	SilverValue float64 `json:"silverValue"`
	Gross       float64 `json:"gross"`
	Net         float64 `json:"net"`
	Nisab       float64 `json:"nisab"`
	Due         bool    `json:"due"`
	Amount      float64 `json:"amount"`
}

// Calculate assesses a against the nisab of basis. Amount is zero when net
// wealth is below the nisab.
func Calculate(a Assets, p Prices, basis Basis) (Result, error) {
	if err := a.validate(); err != nil {
		return Result{}, err
	}
	if err := p.validate(); err != nil {
		return Result{}, err
	}

	var nisabPrice float64
	switch basis {
	case Gold:
		nisabPrice = p.GoldPerGram
	case Silver:
		nisabPrice = p.SilverPerGram
	default:
		return Result{}, fmt.Errorf("invalid nisab basis %q", basis)
	}
	if nisabPrice == 0 {
		return Result{}, fmt.Errorf("a %s price per gram is required to compute the nisab", basis)
	}
	if a.GoldGrams > 0 && p.GoldPerGram == 0 {
		return Result{}, errors.New("a gold price per gram is required to value gold holdings")
	}
	if a.SilverGrams > 0 && p.SilverPerGram == 0 {
		return Result{}, errors.New("a silver price per gram is required to value silver holdings")
	}

	r := Result{
		Basis:       basis,
		GoldValue:   a.GoldGrams * p.GoldPerGram,
		SilverValue: a.SilverGrams * p.SilverPerGram,
		Nisab:       basis.Grams() * nisabPrice,
	}
	r.Gross = a.Cash + a.Savings + a.Investments + r.GoldValue + r.SilverValue
	r.Net = r.Gross - a.Liabilities
	if r.Net >= r.Nisab {
		r.Due = true
		r.Amount = r.Net * Rate
	}
	return r, nil
}

func (a Assets) validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"cash", a.Cash},
		{"savings", a.Savings},
		{"investments", a.Investments},
		{"gold grams", a.GoldGrams},
		{"silver grams", a.SilverGrams},
		{"liabilities", a.Liabilities},
	}
	for _, f := range fields {
		if err := checkAmount(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (p Prices) validate() error {
	if err := checkAmount("gold price", p.GoldPerGram); err != nil {
		return err
	}
	return checkAmount("silver price", p.SilverPerGram)
}

func checkAmount(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid %s %v: must be a finite number", name, v)
	}
	if v < 0 {
		return fmt.Errorf("invalid %s %v: cannot be negative", name, v)
	}
	return nil
}
