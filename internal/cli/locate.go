package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
	"github.com/smokyabdulrahman/ramadan-cli/internal/geo"
)

func newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Detect your location from your IP address",
		Long:  "Ask the geolocation providers in priority order and print the first answer.\nThe result is cached for 24 hours and used when no city or coordinates are configured.",
		Args:  cobra.NoArgs,
		RunE:  runLocate,
	}
}

type locateJSON struct {
	Providers []string      `json:"providers"`
	Location  *geo.Location `json:"location"`
}

func runLocate(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)

	names := geo.NewFactory(geoProviders(a.log)...).ProviderNames()
	loc, err := a.detect(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return writeJSON(out, locateJSON{Providers: names, Location: loc})
	}

	lines := display.KeyValue([][2]string{
		{"City", orNotSet(loc.City)},
		{"Country", orNotSet(loc.Country)},
		{"Coordinates", formatCoords(loc.Latitude, loc.Longitude)},
		{"Timezone", orNotSet(loc.Timezone)},
		{"Provider", display.Cyan(loc.Source)},
	})
	lines = append(lines, "", display.Dim(fmt.Sprintf("Providers tried in order: %s", joinNames(names))))

	fmt.Fprintln(out, display.Card("Detected location", lines...))
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func joinNames(names []string) string {
	s := ""
	for i, n := range names {
		if i > 0 {
			s += " → "
		}
		s += n
	}
	return s
}
