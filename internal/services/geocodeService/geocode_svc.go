// Package geocodeservice resolves sanitized addresses to coordinate
// candidates via the configured geocoding API.
package geocodeservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"

	"wxcli/internal/httpclient"
	"wxcli/internal/validation"
)

// GeocodeError is returned for geocoding failures: transport errors,
// malformed responses, or an empty candidate list.
type GeocodeError struct {
	Reason string
	Err    error
}

func (e *GeocodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocode error: %s: %v", e.Reason, e.Err)
	}
	return "geocode error: " + e.Reason
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// Candidate is one geocoding result. The API returns lat/lon as strings.
type Candidate struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Coordinates converts the candidate's string-typed fields into validated
// coordinates.
func (c Candidate) Coordinates() (validation.Coordinates, error) {
	lat, err := strconv.ParseFloat(c.Lat, 64)
	if err != nil {
		return validation.Coordinates{}, &GeocodeError{Reason: fmt.Sprintf("invalid candidate latitude %q", c.Lat), Err: err}
	}

	long, err := strconv.ParseFloat(c.Lon, 64)
	if err != nil {
		return validation.Coordinates{}, &GeocodeError{Reason: fmt.Sprintf("invalid candidate longitude %q", c.Lon), Err: err}
	}

	return validation.NewCoordinates(lat, long)
}

// Service queries the geocoding API through the shared HTTP client.
type Service struct {
	client  *httpclient.Client
	baseURL string
	apiKey  string
}

// New builds a geocoding Service. The API key is read from the
// MAPS_API_KEY environment variable.
func New(client *httpclient.Client, baseURL string) *Service {
	return &Service{
		client:  client,
		baseURL: baseURL,
		apiKey:  os.Getenv("MAPS_API_KEY"),
	}
}

// Geocode resolves a sanitized address to a list of candidates. The list
// is never empty on success.
func (s *Service) Geocode(ctx context.Context, address string) ([]Candidate, error) {
	query := fmt.Sprintf("%s?q=%s&api_key=%s",
		s.baseURL, url.QueryEscape(address), url.QueryEscape(s.apiKey))

	body, err := s.client.Fetch(ctx, query)
	if err != nil {
		return nil, &GeocodeError{Reason: fmt.Sprintf("error getting coordinates for address %q", address), Err: err}
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(body), &candidates); err != nil {
		return nil, &GeocodeError{Reason: "malformed geocode response", Err: err}
	}

	if len(candidates) == 0 {
		return nil, &GeocodeError{
			Reason: fmt.Sprintf("no results for address %q, verify that the address is valid", address),
		}
	}

	logCandidate(candidates[0])

	return candidates, nil
}

// logCandidate emits the selected candidate as indented JSON at debug
// level, mirroring the location data the pipeline will act on.
func logCandidate(c Candidate) {
	data, err := json.MarshalIndent(map[string]string{
		"display_name": c.DisplayName,
		"lat":          c.Lat,
		"long":         c.Lon,
	}, "", "  ")
	if err != nil {
		return
	}

	slog.Debug("location data:\n" + string(data))
}
