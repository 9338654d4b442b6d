package spinner

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// StartSpinner starts a terminal spinner on stderr with the given message,
// so spinner frames never mix into the tool's stdout output.
// Returns a stop function to halt and clear the spinner.
//
// Usage: assign the spinner to a 'stop' variable, run some code, then call stop().
// i.e.:
//
//	stop := spinner.StartSpinner("Fetching weather ")
//	result, err := forecastservice.GetWeather(ctx, client, url)
//	stop()
//	if err != nil { return err }
func StartSpinner(message string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()

	return s.Stop
}
