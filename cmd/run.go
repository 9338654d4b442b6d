package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"wxcli/internal/config"
	"wxcli/internal/httpclient"
	addressservice "wxcli/internal/services/addressService"
	forecastservice "wxcli/internal/services/forecastService"
	geocodeservice "wxcli/internal/services/geocodeService"
	"wxcli/internal/utils/spinner"
	"wxcli/internal/validation"

	"github.com/mattn/go-isatty"
)

// runOptions carries the raw location flags. latitude/longitude are nil
// when the corresponding flag was not set.
type runOptions struct {
	address   string
	latitude  *float64
	longitude *float64
	verbose   bool
}

// runForecast sequences the pipeline: validate, resolve coordinates
// (geocoding an address or taking them directly), build the forecast URL,
// fetch, parse, render. The first failure aborts the run; nothing is
// written to out after a failure.
func runForecast(ctx context.Context, settings config.Settings, client *httpclient.Client, opts runOptions, out io.Writer) error {
	inputs, err := validation.ValidateArguments(opts.address, opts.latitude, opts.longitude)
	if err != nil {
		return err
	}

	stop := startSpinner(opts.verbose)
	defer stop()

	coords, err := resolveCoordinates(ctx, settings, client, inputs)
	if err != nil {
		return err
	}

	url, err := forecastservice.BuildForecastURL(settings.WeatherBaseURL, coords.Latitude, coords.Longitude)
	if err != nil {
		return err
	}

	result, err := forecastservice.GetWeather(ctx, client, url)
	if err != nil {
		return err
	}

	stop()

	return renderWeather(out, result)
}

// resolveCoordinates turns validated inputs into coordinates, geocoding the
// address when one was given. The first geocoding candidate is always
// selected.
func resolveCoordinates(ctx context.Context, settings config.Settings, client *httpclient.Client, inputs validation.RequestInputs) (validation.Coordinates, error) {
	if inputs.Address == "" {
		return *inputs.Coords, nil
	}

	sanitized, err := addressservice.NewSanitizer(nil).Sanitize(inputs.Address)
	if err != nil {
		return validation.Coordinates{}, err
	}

	candidates, err := geocodeservice.New(client, settings.GeocodeBaseURL).Geocode(ctx, sanitized)
	if err != nil {
		return validation.Coordinates{}, err
	}

	return candidates[0].Coordinates()
}

// renderWeather prints the two result lines. Both measurements must be
// present; a partial payload is an error, not partial output.
func renderWeather(out io.Writer, result forecastservice.WeatherResult) error {
	temperature, ok := result.Measurement("temperature_2m")
	if !ok {
		return &forecastservice.WeatherError{Reason: "weather data missing temperature_2m"}
	}

	windSpeed, ok := result.Measurement("wind_speed_10m")
	if !ok {
		return &forecastservice.WeatherError{Reason: "weather data missing wind_speed_10m"}
	}

	_, err := fmt.Fprintf(out, "Temperature:\t%v°\nWind Speed:\t%v MPH\n", temperature, windSpeed)
	return err
}

// startSpinner shows a spinner while the APIs are queried, but only on a
// real terminal and never in verbose mode, where it would interleave with
// debug lines. The returned stop function is safe to call twice.
func startSpinner(verbose bool) func() {
	if verbose || !isatty.IsTerminal(os.Stdout.Fd()) {
		return func() {}
	}

	stop := spinner.StartSpinner("Fetching weather ")
	stopped := false

	return func() {
		if !stopped {
			stopped = true
			stop()
		}
	}
}
