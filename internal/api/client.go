package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// Query identifies the location and calculation settings of a request.
// When City is set the city endpoints are used, otherwise coordinates.
// Negative Method or School values let the API choose.
type Query struct {
	Latitude  float64
	Longitude float64
	City      string
	Country   string
	Method    int
	School    int
}

// ByCity reports whether q addresses a city rather than coordinates.
func (q Query) ByCity() bool {
	return q.City != ""
}

// Key returns a stable string describing every parameter that changes the
// API's answer. It is used to build cache keys.
func (q Query) Key() string {
	return fmt.Sprintf("%.6f|%.6f|%s|%s|%d|%d", q.Latitude, q.Longitude, q.City, q.Country, q.Method, q.School)
}

func (q Query) params() url.Values {
	params := url.Values{}
	if q.ByCity() {
		params.Set("city", q.City)
		params.Set("country", q.Country)
	} else {
		params.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', 6, 64))
		params.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', 6, 64))
	}
	if q.Method >= 0 {
		params.Set("method", strconv.Itoa(q.Method))
	}
	if q.School >= 0 {
		params.Set("school", strconv.Itoa(q.School))
	}
	return params
}

// FetchDay fetches a single day's timings for q.
func (c *Client) FetchDay(ctx context.Context, date time.Time, q Query) (*Response, error) {
	if q.ByCity() {
		return c.FetchByCity(ctx, date, q.City, q.Country, q.Method, q.School)
	}
	return c.FetchByCoordinates(ctx, date, q.Latitude, q.Longitude, q.Method, q.School)
}

// FetchByCoordinates fetches prayer times for the given date and coordinates.
func (c *Client) FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format("02-01-2006"))
	q := Query{Latitude: lat, Longitude: lon, Method: method, School: school}

	var resp Response
	if err := c.doRequest(ctx, endpoint, q.params(), &resp); err != nil {
		return nil, err
	}
	if err := checkCode(resp.Code, resp.Status); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchByCity fetches prayer times for the given date, city, and country.
func (c *Client) FetchByCity(ctx context.Context, date time.Time, city, country string, method, school int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity/%s", c.BaseURL, date.Format("02-01-2006"))
	q := Query{City: city, Country: country, Method: method, School: school}

	var resp Response
	if err := c.doRequest(ctx, endpoint, q.params(), &resp); err != nil {
		return nil, err
	}
	if err := checkCode(resp.Code, resp.Status); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchHijriCalendar fetches every day of a Hijri month for q.
// Ramadan is month 9.
func (c *Client) FetchHijriCalendar(ctx context.Context, q Query, year, month int) (*CalendarResponse, error) {
	path := "hijriCalendar"
	if q.ByCity() {
		path = "hijriCalendarByCity"
	}
	endpoint := fmt.Sprintf("%s/%s/%d/%d", c.BaseURL, path, year, month)

	var resp CalendarResponse
	if err := c.doRequest(ctx, endpoint, q.params(), &resp); err != nil {
		return nil, err
	}
	if err := checkCode(resp.Code, resp.Status); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("API returned an empty calendar for %d/%d", month, year)
	}
	return &resp, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build API request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}

func checkCode(code int, status string) error {
	if code != 200 {
		return fmt.Errorf("API error: code=%d status=%s", code, status)
	}
	return nil
}
