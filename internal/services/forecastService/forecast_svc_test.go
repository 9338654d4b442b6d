package forecastservice

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wxcli/internal/httpclient"
	"wxcli/internal/validation"
)

func testClient() *httpclient.Client {
	return httpclient.New(httpclient.Config{
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    5 * time.Second,
		MaxRetries:     0,
		BackoffFactor:  0.001,
		MaxConns:       10,
	})
}

func TestBuildForecastURL(t *testing.T) {
	url, err := BuildForecastURL("https://api.open-meteo.com/v1/forecast", 47.6, -122.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(url, "latitude=47.6&longitude=-122.3") {
		t.Errorf("url missing coordinates: %s", url)
	}

	fixed := "current=temperature_2m,wind_speed_10m&temperature_unit=fahrenheit&wind_speed_unit=mph&timezone=auto"
	if !strings.Contains(url, fixed) {
		t.Errorf("url missing fixed parameter block: %s", url)
	}
	if !strings.HasPrefix(url, "https://api.open-meteo.com/v1/forecast?") {
		t.Errorf("url has unexpected prefix: %s", url)
	}
}

func TestBuildForecastURLRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		lat  float64
		long float64
	}{
		{"latitude out of range", 91, 0},
		{"longitude out of range", 0, -181},
		{"latitude NaN", math.NaN(), 0},
		{"longitude infinite", 0, math.Inf(-1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildForecastURL("https://example.com/v1/forecast", tc.lat, tc.long)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var argErr *validation.InvalidArgumentsError
			if !errors.As(err, &argErr) {
				t.Fatalf("expected *validation.InvalidArgumentsError, got %T", err)
			}
		})
	}
}

func TestParseWeather(t *testing.T) {
	body := `{
		"latitude": 47.6,
		"longitude": -122.3,
		"current": {
			"time": "2026-08-24T12:00",
			"temperature_2m": 72.5,
			"wind_speed_10m": 6.2
		}
	}`

	result, err := ParseWeather(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Latitude != 47.6 || result.Longitude != -122.3 {
		t.Errorf("unexpected coordinates: %+v", result)
	}

	temp, ok := result.Measurement("temperature_2m")
	if !ok || temp != 72.5 {
		t.Errorf("unexpected temperature: %v (ok=%v)", temp, ok)
	}

	wind, ok := result.Measurement("wind_speed_10m")
	if !ok || wind != 6.2 {
		t.Errorf("unexpected wind speed: %v (ok=%v)", wind, ok)
	}
}

func TestParseWeatherMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing current", `{"latitude": 47.6, "longitude": -122.3}`},
		{"missing latitude", `{"longitude": -122.3, "current": {}}`},
		{"missing longitude", `{"latitude": 47.6, "current": {}}`},
		{"empty object", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseWeather(tc.body)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var wErr *WeatherError
			if !errors.As(err, &wErr) {
				t.Fatalf("expected *WeatherError, got %T", err)
			}
			if !strings.Contains(wErr.Reason, "missing required fields") {
				t.Errorf("unexpected reason: %q", wErr.Reason)
			}
		})
	}
}

func TestParseWeatherMalformedJSON(t *testing.T) {
	_, err := ParseWeather(`{"latitude": `)
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}

	var wErr *WeatherError
	if !errors.As(err, &wErr) {
		t.Fatalf("expected *WeatherError, got %T", err)
	}
}

func TestGetWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("latitude"); got != "47.6" {
			t.Errorf("unexpected latitude param: %q", got)
		}
		if got := q.Get("temperature_unit"); got != "fahrenheit" {
			t.Errorf("unexpected temperature_unit param: %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude": 47.6, "longitude": -122.3, "current": {"temperature_2m": 72.5, "wind_speed_10m": 6.2}}`))
	}))
	defer srv.Close()

	client := testClient()
	defer client.Release()

	url, err := BuildForecastURL(srv.URL, 47.6, -122.3)
	if err != nil {
		t.Fatalf("unexpected error building url: %v", err)
	}

	result, err := GetWeather(context.Background(), client, url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if temp, _ := result.Measurement("temperature_2m"); temp != 72.5 {
		t.Errorf("unexpected temperature: %v", temp)
	}
}

func TestGetWeatherWrapsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := testClient()
	defer client.Release()

	_, err := GetWeather(context.Background(), client, srv.URL)
	if err == nil {
		t.Fatal("expected error for 403 response, got nil")
	}

	var fetchErr *httpclient.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected wrapped *httpclient.FetchError, got %v", err)
	}
}
