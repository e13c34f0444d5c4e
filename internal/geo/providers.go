package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Default endpoints. Each is free and needs no API key.
const (
	IPAPIURL   = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone"
	IPWhoURL   = "https://ipwho.is/"
	IPAPICoURL = "https://ipapi.co/json/"
)

// HTTPProvider queries one JSON geolocation endpoint.
type HTTPProvider struct {
	name     string
	priority int
	// URL is the endpoint queried by Detect. Exported so tests can point
	// it at an httptest server.
	URL    string
	parse  func(body io.Reader) (*Location, error)
	client *http.Client
	log    zerolog.Logger
}

// Name implements Provider.
func (p *HTTPProvider) Name() string { return p.name }

// Priority implements Provider.
func (p *HTTPProvider) Priority() int { return p.priority }

// Detect implements Provider. Every failure is logged and reported as
// "no location" so the next provider gets a turn.
func (p *HTTPProvider) Detect(ctx context.Context) (*Location, error) {
	loc, err := p.fetch(ctx)
	if err != nil {
		p.log.Debug().Str("provider", p.name).Err(err).Msg("geolocation provider failed")
		return nil, nil
	}
	p.log.Debug().Str("provider", p.name).Str("city", loc.City).Str("timezone", loc.Timezone).Msg("location detected")
	return loc, nil
}

func (p *HTTPProvider) fetch(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	loc, err := p.parse(resp.Body)
	if err != nil {
		return nil, err
	}
	if loc.Timezone == "" || (loc.Latitude == 0 && loc.Longitude == 0) {
		return nil, errors.New("geolocation response is missing coordinates or timezone")
	}
	return loc, nil
}

func newHTTPProvider(name string, priority int, url string, parse func(io.Reader) (*Location, error), log zerolog.Logger) *HTTPProvider {
	return &HTTPProvider{
		name:     name,
		priority: priority,
		URL:      url,
		parse:    parse,
		client:   &http.Client{Timeout: 5 * time.Second},
		log:      log,
	}
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

// NewIPAPI returns a provider backed by ip-api.com.
func NewIPAPI(priority int, log zerolog.Logger) *HTTPProvider {
	return newHTTPProvider("ip-api.com", priority, IPAPIURL, func(body io.Reader) (*Location, error) {
		var r ipAPIResponse
		if err := json.NewDecoder(body).Decode(&r); err != nil {
			return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
		}
		if r.Status != "success" {
			return nil, fmt.Errorf("geolocation failed: %s", r.Message)
		}
		return &Location{Latitude: r.Lat, Longitude: r.Lon, City: r.City, Country: r.Country, Timezone: r.Timezone}, nil
	}, log)
}

// ipWhoResponse maps the response from ipwho.is.
type ipWhoResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  struct {
		ID string `json:"id"`
	} `json:"timezone"`
}

// NewIPWho returns a provider backed by ipwho.is.
func NewIPWho(priority int, log zerolog.Logger) *HTTPProvider {
	return newHTTPProvider("ipwho.is", priority, IPWhoURL, func(body io.Reader) (*Location, error) {
		var r ipWhoResponse
		if err := json.NewDecoder(body).Decode(&r); err != nil {
			return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
		}
		if !r.Success {
			return nil, fmt.Errorf("geolocation failed: %s", r.Message)
		}
		return &Location{Latitude: r.Latitude, Longitude: r.Longitude, City: r.City, Country: r.Country, Timezone: r.Timezone.ID}, nil
	}, log)
}

// ipapiCoResponse maps the response from ipapi.co.
type ipapiCoResponse struct {
	Error       bool    `json:"error"`
	Reason      string  `json:"reason"`
	City        string  `json:"city"`
	CountryName string  `json:"country_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
}

// NewIPAPICo returns a provider backed by ipapi.co.
func NewIPAPICo(priority int, log zerolog.Logger) *HTTPProvider {
	return newHTTPProvider("ipapi.co", priority, IPAPICoURL, func(body io.Reader) (*Location, error) {
		var r ipapiCoResponse
		if err := json.NewDecoder(body).Decode(&r); err != nil {
			return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
		}
		if r.Error {
			return nil, fmt.Errorf("geolocation failed: %s", r.Reason)
		}
		return &Location{Latitude: r.Latitude, Longitude: r.Longitude, City: r.City, Country: r.CountryName, Timezone: r.Timezone}, nil
	}, log)
}

// DefaultProviders returns the built-in provider chain.
func DefaultProviders(log zerolog.Logger) []Provider {
	return []Provider{
		NewIPAPI(1, log),
		NewIPWho(2, log),
		NewIPAPICo(3, log),
	}
}
