package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/api"
	"github.com/smokyabdulrahman/ramadan-cli/internal/cache"
	"github.com/smokyabdulrahman/ramadan-cli/internal/config"
	"github.com/smokyabdulrahman/ramadan-cli/internal/geo"
	"github.com/smokyabdulrahman/ramadan-cli/internal/roza"
	"github.com/smokyabdulrahman/ramadan-cli/internal/timefmt"
)

// Cache lifetimes.
const (
	calendarTTL = 7 * 24 * time.Hour
	timingsTTL  = 12 * time.Hour
	geoTTL      = 24 * time.Hour

	geoCacheKey = "geo:location"
)

// Overridden in tests.
var (
	newAPIClient = api.NewClient
	geoProviders = geo.DefaultProviders
	newTimes     = timefmt.New
)

// errNoLocation is returned when neither flags, config nor any provider
// could supply a location.
var errNoLocation = errors.New("could not detect your location; pass --city and --country (or --latitude and --longitude), or save them with 'ramadan config set'")

// app bundles the collaborators a command needs.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	times timefmt.Service
	cache *cache.Repository // nil when caching is unavailable
	fetch *fetcher
}

func newApp(cmd *cobra.Command) *app {
	cfg := effectiveConfig(cmd)
	log := loggerFrom(cmd)
	times := newTimes()

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Warn().Err(err).Msg("cache disabled")
		c = nil
	}

	return &app{
		cfg:   cfg,
		log:   log,
		times: times,
		cache: c,
		fetch: &fetcher{client: newAPIClient(), cache: c, times: times, log: log},
	}
}

// location holds the result of location resolution.
type location struct {
	Query    api.Query
	Label    string // "City, Country" or coordinates
	Timezone string // hint from geolocation, may be empty
	Source   string // "flags/config", "cache" or a provider name
}

// resolveLocation determines where to fetch timings for.
// Priority: CLI flags > config > cached geolocation > provider chain.
func (a *app) resolveLocation(ctx context.Context) (location, error) {
	cfg := a.cfg
	q := api.Query{
		Method: cfg.MethodOrDefault(-1),
		School: cfg.SchoolOrDefault(-1),
	}

	switch {
	case cfg.HasCoordinates():
		q.Latitude, q.Longitude = cfg.Latitude, cfg.Longitude
		label := joinPlace(cfg.City, cfg.Country)
		if label == "" {
			label = formatCoords(cfg.Latitude, cfg.Longitude)
		}
		return location{Query: q, Label: label, Source: "flags/config"}, nil

	case cfg.HasCity():
		if cfg.Country == "" {
			return location{}, fmt.Errorf("--country is required when using --city")
		}
		q.City, q.Country = cfg.City, cfg.Country
		return location{Query: q, Label: joinPlace(cfg.City, cfg.Country), Source: "flags/config"}, nil
	}

	var detected geo.Location
	if a.cache != nil && a.cache.Get(geoCacheKey, &detected) {
		a.log.Debug().Str("source", detected.Source).Msg("using cached location")
		return fromGeo(q, &detected, "cache"), nil
	}

	loc, err := a.detect(ctx)
	if err != nil {
		return location{}, err
	}
	return fromGeo(q, loc, loc.Source), nil
}

// detect runs the provider chain and caches a successful result.
func (a *app) detect(ctx context.Context) (*geo.Location, error) {
	factory := geo.NewFactory(geoProviders(a.log)...)
	a.log.Info().Strs("providers", factory.ProviderNames()).Msg("detecting location")

	loc, err := factory.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("location detection failed: %w", err)
	}
	if loc == nil {
		return nil, errNoLocation
	}

	if a.cache != nil {
		if err := a.cache.Set(geoCacheKey, loc, geoTTL); err != nil {
			a.log.Warn().Err(err).Msg("failed to cache location")
		}
	}
	return loc, nil
}

func fromGeo(q api.Query, loc *geo.Location, source string) location {
	q.Latitude, q.Longitude = loc.Latitude, loc.Longitude
	label := joinPlace(loc.City, loc.Country)
	if label == "" {
		label = formatCoords(loc.Latitude, loc.Longitude)
	}
	return location{Query: q, Label: label, Timezone: loc.Timezone, Source: source}
}

func joinPlace(city, country string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func formatCoords(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

// fetcher reads timings through the cache.
type fetcher struct {
	client *api.Client
	cache  *cache.Repository
	times  timefmt.Service
	log    zerolog.Logger
}

// day returns the timings for date, from the cache when possible.
func (f *fetcher) day(ctx context.Context, date time.Time, q api.Query) (api.Data, error) {
	key := fmt.Sprintf("timings:%s:%s", date.Format("2006-01-02"), q.Key())

	var d api.Data
	if f.lookup(key, &d) {
		return d, nil
	}

	resp, err := f.client.FetchDay(ctx, date, q)
	if err != nil {
		return api.Data{}, fmt.Errorf("failed to fetch timings: %w", err)
	}
	f.store(key, resp.Data, timingsTTL)
	return resp.Data, nil
}

// schedule returns the current or upcoming Ramadan for q. Today's Hijri
// date decides which year that is.
func (f *fetcher) schedule(ctx context.Context, q api.Query) (roza.Schedule, error) {
	today, err := f.day(ctx, f.times.Now(), q)
	if err != nil {
		return roza.Schedule{}, err
	}

	year := roza.RamadanYear(today.Date.Hijri)
	if year == 0 {
		return roza.Schedule{}, fmt.Errorf("API returned no Hijri year for today")
	}

	key := fmt.Sprintf("calendar:%d-%02d:%s", year, roza.RamadanMonth, q.Key())

	var days []api.Data
	if !f.lookup(key, &days) {
		resp, err := f.client.FetchHijriCalendar(ctx, q, year, roza.RamadanMonth)
		if err != nil {
			return roza.Schedule{}, fmt.Errorf("failed to fetch Ramadan %d calendar: %w", year, err)
		}
		days = resp.Data
		f.store(key, days, calendarTTL)
	}

	return roza.Build(days), nil
}

func (f *fetcher) lookup(key string, dst any) bool {
	if f.cache == nil {
		return false
	}
	hit := f.cache.Get(key, dst)
	f.log.Debug().Str("key", key).Bool("hit", hit).Msg("cache lookup")
	return hit
}

func (f *fetcher) store(key string, data any, ttl time.Duration) {
	if f.cache == nil {
		return
	}
	if err := f.cache.Set(key, data, ttl); err != nil {
		f.log.Warn().Err(err).Str("key", key).Msg("failed to write cache")
	}
}

// loadSchedule resolves the location and fetches its Ramadan schedule.
func (a *app) loadSchedule(ctx context.Context) (location, roza.Schedule, error) {
	loc, err := a.resolveLocation(ctx)
	if err != nil {
		return location{}, roza.Schedule{}, err
	}
	a.log.Info().Str("location", loc.Label).Str("source", loc.Source).Msg("location resolved")

	s, err := a.fetch.schedule(ctx, loc.Query)
	if err != nil {
		return location{}, roza.Schedule{}, err
	}
	if s.Len() == 0 {
		return location{}, roza.Schedule{}, fmt.Errorf("the Ramadan calendar is empty")
	}
	return loc, s, nil
}
