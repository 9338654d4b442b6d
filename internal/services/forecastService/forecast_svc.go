// Package forecastservice builds forecast request URLs and decodes current
// weather conditions from the forecast API.
package forecastservice

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"wxcli/internal/httpclient"
	"wxcli/internal/validation"
)

// forecastParams is the fixed query parameter block appended to every
// forecast request: current temperature and wind speed, Fahrenheit, mph,
// automatic timezone.
const forecastParams = "current=temperature_2m,wind_speed_10m&temperature_unit=fahrenheit&wind_speed_unit=mph&timezone=auto"

// WeatherError is returned for malformed or incomplete forecast payloads,
// and wraps fetch failures on the forecast request.
type WeatherError struct {
	Reason string
	Err    error
}

func (e *WeatherError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather error: %s: %v", e.Reason, e.Err)
	}
	return "weather error: " + e.Reason
}

func (e *WeatherError) Unwrap() error { return e.Err }

// WeatherResult is the decoded forecast payload. Current maps measurement
// names to their values. Immutable once built.
type WeatherResult struct {
	Latitude  float64
	Longitude float64
	Current   map[string]any
}

// Measurement returns the named numeric value from Current.
func (w WeatherResult) Measurement(name string) (float64, bool) {
	v, ok := w.Current[name].(float64)
	return v, ok
}

// BuildForecastURL formats the forecast request URL for the given
// coordinates. Inputs are re-validated here, independent of the argument
// validator, so a bad value can never reach the wire.
func BuildForecastURL(baseURL string, lat, long float64) (string, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(long) || math.IsInf(long, 0) {
		return "", &validation.InvalidArgumentsError{
			Reason: fmt.Sprintf("lat/long must be numerical values, received: latitude: %v, longitude: %v", lat, long),
		}
	}

	if !validation.ValidateCoordinates(lat, long) {
		return "", &validation.InvalidArgumentsError{
			Reason: fmt.Sprintf("invalid lat/long provided, latitude: %v, longitude: %v", lat, long),
		}
	}

	return fmt.Sprintf("%s?latitude=%s&longitude=%s&%s",
		baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(long, 'f', -1, 64),
		forecastParams,
	), nil
}

// GetWeather fetches the forecast URL and decodes the response into a
// WeatherResult. A single linear request, parse, validate sequence.
func GetWeather(ctx context.Context, client *httpclient.Client, url string) (WeatherResult, error) {
	body, err := client.Fetch(ctx, url)
	if err != nil {
		return WeatherResult{}, &WeatherError{Reason: "failed to fetch weather data", Err: err}
	}

	return ParseWeather(body)
}

// ParseWeather decodes a forecast payload, requiring the latitude,
// longitude and current fields.
func ParseWeather(body string) (WeatherResult, error) {
	var raw struct {
		Latitude  *float64       `json:"latitude"`
		Longitude *float64       `json:"longitude"`
		Current   map[string]any `json:"current"`
	}

	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return WeatherResult{}, &WeatherError{Reason: "malformed JSON response", Err: err}
	}

	if raw.Latitude == nil || raw.Longitude == nil || raw.Current == nil {
		return WeatherResult{}, &WeatherError{Reason: "missing required fields in weather data"}
	}

	return WeatherResult{
		Latitude:  *raw.Latitude,
		Longitude: *raw.Longitude,
		Current:   raw.Current,
	}, nil
}
