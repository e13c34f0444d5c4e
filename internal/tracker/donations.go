package tracker

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Donation is one logged act of charity.
type Donation struct {
	ID       uuid.UUID `json:"id"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Note     string    `json:"note,omitempty"`
	At       time.Time `json:"at"`
}

// ErrDonationNotFound is returned when no donation has the given ID.
var ErrDonationNotFound = errors.New("donation not found")

// AddDonation logs a donation. A zero at is replaced with the store clock.
func (s *Store) AddDonation(amount float64, currency, note string, at time.Time) (Donation, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Donation{}, fmt.Errorf("invalid amount %v: must be a finite number", amount)
	}
	if amount <= 0 {
		return Donation{}, fmt.Errorf("invalid amount %v: must be greater than zero", amount)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return Donation{}, errors.New("currency is required")
	}
	if at.IsZero() {
		at = s.now()
	}

	d := Donation{
		ID:       uuid.New(),
		Amount:   amount,
		Currency: currency,
		Note:     note,
		At:       at,
	}
	s.doc.Donations = append(s.doc.Donations, d)
	return d, nil
}

// RemoveDonation deletes the donation with the given ID.
func (s *Store) RemoveDonation(id string) (Donation, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Donation{}, fmt.Errorf("invalid donation id %q: %w", id, err)
	}
	for i, d := range s.doc.Donations {
		if d.ID == parsed {
			s.doc.Donations = append(s.doc.Donations[:i], s.doc.Donations[i+1:]...)
			return d, nil
		}
	}
	return Donation{}, fmt.Errorf("%w: %s", ErrDonationNotFound, id)
}

// Donations returns the log in chronological order.
func (s *Store) Donations() []Donation {
	out := make([]Donation, len(s.doc.Donations))
	copy(out, s.doc.Donations)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// TotalsByCurrency sums the logged donations per currency.
func (s *Store) TotalsByCurrency() map[string]float64 {
	totals := make(map[string]float64)
	for _, d := range s.doc.Donations {
		totals[d.Currency] += d.Amount
	}
	return totals
}
