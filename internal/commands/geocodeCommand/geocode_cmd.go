package geocodecommand

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"wxcli/internal/config"
	"wxcli/internal/httpclient"
	addressservice "wxcli/internal/services/addressService"
	geocodeservice "wxcli/internal/services/geocodeService"
)

// NewGeocodeCommand lists every geocoding candidate for an address, so an
// ambiguous address can be disambiguated by hand before a forecast run.
// settingsFn defers config resolution until the command actually runs.
func NewGeocodeCommand(settingsFn func() config.Settings) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "geocode",
		Short: "List geocoding candidates for an address",
		Long: `Resolve an address against the geocoding service and print every
candidate it returns. The weather pipeline always uses the first candidate;
use this command to check what that will be.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := settingsFn()

			client := httpclient.Shared(httpclient.Config{
				ConnectTimeout: settings.HTTP.ConnectTimeout(),
				ReadTimeout:    settings.HTTP.ReadTimeout(),
				MaxRetries:     settings.HTTP.MaxRetries,
				BackoffFactor:  settings.HTTP.BackoffFactor,
				MaxConns:       settings.HTTP.MaxConns,
			})
			defer client.Release()

			sanitized, err := addressservice.NewSanitizer(nil).Sanitize(address)
			if err != nil {
				return err
			}

			candidates, err := geocodeservice.New(client, settings.GeocodeBaseURL).Geocode(cmd.Context(), sanitized)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"#", "Display Name", "Lat", "Lon"})
			for i, c := range candidates {
				t.AppendRow(table.Row{i + 1, c.DisplayName, c.Lat, c.Lon})
			}
			t.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Address to geocode")
	cmd.MarkFlagRequired("address")

	return cmd
}
