// The root command for the CLI.
// Running it with no subcommand executes the weather pipeline; subcommands
// cover geocoding inspection and version info.
package cmd

import (
	"log/slog"
	"os"

	geocodecommand "wxcli/internal/commands/geocodeCommand"
	versioncommand "wxcli/internal/commands/versionCommand"
	"wxcli/internal/config"
	"wxcli/internal/httpclient"
	"wxcli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// A path to a file to load configuration from
	cfgFile string
	// For enabling debug logging with --verbose/-v
	verbose bool

	// Location flags; validity rules are enforced by the validator.
	address   string
	latitude  float64
	longitude float64

	// Resolved on initialization, before any command runs.
	settings  config.Settings
	closeLogs func() error
)

// Cobra root command
var rootCmd = &cobra.Command{
	Use:   "wxcli",
	Short: "Fetch current weather for an address or coordinates.",
	Long: `Resolve a location to current weather conditions.

Provide either '--address', or the '--latitude' and '--longitude' pair.
Addresses are geocoded first; the first candidate is used.
`,
	// Errors are logged once, by Execute.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.LoadConfig(cmd.Flags(), cfgFile)
		if err != nil {
			return err
		}

		closeLogs, err = logging.Setup(verbose, settings.LogFile)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{
			address: address,
			verbose: verbose,
		}
		if cmd.Flags().Changed("latitude") {
			opts.latitude = &latitude
		}
		if cmd.Flags().Changed("longitude") {
			opts.longitude = &longitude
		}

		client := httpclient.Shared(httpclient.Config{
			ConnectTimeout: settings.HTTP.ConnectTimeout(),
			ReadTimeout:    settings.HTTP.ReadTimeout(),
			MaxRetries:     settings.HTTP.MaxRetries,
			BackoffFactor:  settings.HTTP.BackoffFactor,
			MaxConns:       settings.HTTP.MaxConns,
		})
		// Released on success and on every failure return.
		defer client.Release()

		return runForecast(cmd.Context(), settings, client, opts, os.Stdout)
	},
}

// Execute the root Cobra command. This is the single catch point: any
// failure from any stage is logged once and the process exits non-zero.
func Execute() {
	err := rootCmd.Execute()

	if err != nil {
		slog.Error(err.Error())
	}

	// os.Exit skips defers, so the log file is closed explicitly.
	if closeLogs != nil {
		closeLogs()
	}

	if err != nil {
		os.Exit(1)
	}
}

// Initialize the root command
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON, YAML, TOML or dotenv)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.Flags().StringVar(&address, "address", "", "Address of the location")
	rootCmd.Flags().Float64Var(&latitude, "latitude", 0, "Latitude of the location")
	rootCmd.Flags().Float64Var(&longitude, "longitude", 0, "Longitude of the location")

	rootCmd.AddCommand(versioncommand.NewVersionCommand())
	rootCmd.AddCommand(geocodecommand.NewGeocodeCommand(func() config.Settings {
		return settings
	}))
}
