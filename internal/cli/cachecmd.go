package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached timetables and locations",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cache entry",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete expired or corrupt cache entries",
		Args:  cobra.NoArgs,
		RunE:  runCachePrune,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE:  runCachePath,
	})

	return cmd
}

func openCache(cmd *cobra.Command) (*cache.Repository, error) {
	c, err := cache.New(effectiveConfig(cmd).CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return c, nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openCache(cmd)
	if err != nil {
		return err
	}
	if err := c.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared (%s).\n", c.Dir())
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	c, err := openCache(cmd)
	if err != nil {
		return err
	}
	n, err := c.PruneExpired()
	if err != nil {
		return err
	}
	loggerFrom(cmd).Debug().Int("removed", n).Str("dir", c.Dir()).Msg("cache pruned")
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired %s.\n", n, plural(n, "entry", "entries"))
	return nil
}

func runCachePath(cmd *cobra.Command, args []string) error {
	dir := effectiveConfig(cmd).CacheDir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			return err
		}
		dir = d
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
