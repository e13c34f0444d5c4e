package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
	"github.com/smokyabdulrahman/ramadan-cli/internal/roza"
	"github.com/smokyabdulrahman/ramadan-cli/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"tui", "live"},
		Short:   "Open the live Ramadan dashboard",
		Long:    "Full-screen view of the current roza with a countdown that refreshes every minute.\nUse the arrow keys to browse days, r to refetch, q to quit.",
		Args:    cobra.NoArgs,
		RunE:    runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a := newApp(cmd)
	ctx := cmd.Context()

	// Resolve before the alt screen takes over so errors stay visible.
	loc, err := a.resolveLocation(ctx)
	if err != nil {
		return err
	}

	a.log.Info().Msg("disabling logging for interactive dashboard")
	fetch := *a.fetch
	fetch.log = zerolog.Nop()

	return tui.Run(ctx, tui.Options{
		Location:   loc.Label,
		TimeFormat: a.cfg.TimeFormat,
		Times:      a.times,
		NoColor:    !display.Enabled(),
		Load: func(ctx context.Context) (roza.Schedule, error) {
			return fetch.schedule(ctx, loc.Query)
		},
	})
}
