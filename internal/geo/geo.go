// Package geo resolves the user's location by asking a chain of
// IP-geolocation providers in priority order.
package geo

import (
	"context"
	"sort"
)

// Location holds geographic coordinates detected from the user's IP.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
	// Source names the provider that produced the location.
	Source string `json:"source,omitempty"`
}

// Provider is a single location source.
//
// Detect returns (nil, nil) when the provider could not produce a location,
// including for network failures and malformed responses. A non-nil error
// is reserved for conditions the caller must see.
type Provider interface {
	Name() string
	Priority() int
	Detect(ctx context.Context) (*Location, error)
}

// Factory tries providers one after another, lowest priority first.
type Factory struct {
	providers []Provider
}

// NewFactory returns a Factory over providers sorted by ascending priority.
// Providers with equal priority keep their relative order.
func NewFactory(providers ...Provider) *Factory {
	sorted := make([]Provider, len(providers))
	copy(sorted, providers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Factory{providers: sorted}
}

// Detect asks each provider in turn and returns the first location found.
// Providers after the first success are not called. An error from a
// provider is returned as-is. Detect returns (nil, nil) when no provider
// produced a location.
func (f *Factory) Detect(ctx context.Context) (*Location, error) {
	for _, p := range f.providers {
		loc, err := p.Detect(ctx)
		if err != nil {
			return nil, err
		}
		if loc != nil {
			if loc.Source == "" {
				loc.Source = p.Name()
			}
			return loc, nil
		}
	}
	return nil, nil
}

// ProviderNames returns provider names in the order they are tried.
func (f *Factory) ProviderNames() []string {
	names := make([]string, len(f.providers))
	for i, p := range f.providers {
		names[i] = p.Name()
	}
	return names
}
