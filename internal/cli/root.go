package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/ramadan-cli/internal/config"
	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
	"github.com/smokyabdulrahman/ramadan-cli/internal/logger"
)

// Global flags shared across all subcommands.
var (
	FlagCity       string
	FlagCountry    string
	FlagLatitude   float64
	FlagLongitude  float64
	FlagMethod     int
	FlagSchool     int
	FlagJSON       bool
	FlagCacheDir   string
	FlagDataDir    string
	FlagTimeFormat string
	FlagNoColor    bool
	FlagVerbose    int
)

// dotEnvFile is read from the working directory before the config loads.
const dotEnvFile = ".env"

// annotationConfigRecovery marks commands that must run even when the
// config file cannot be read, such as "config reset".
const annotationConfigRecovery = "config-recovery"

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var (
	loadedConfig *config.Config
	configStore  *config.Store
)

// NewRootCmd creates the root command for the ramadan CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	loadedConfig, configStore = nil, nil

	rootCmd := &cobra.Command{
		Use:     "ramadan",
		Short:   "Ramadan timetable, countdowns and personal tracker",
		Long:    "Sehar and Iftar times for every day of Ramadan, powered by the Al Adhan API,\nwith a live countdown, a fasting log, a charity log and a Zakat calculator.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(dotEnvFile); err != nil {
				return err
			}

			log := logger.New(cmd.ErrOrStderr(), FlagVerbose)
			cmd.SetContext(log.WithContext(cmd.Context()))

			if FlagNoColor {
				display.SetEnabled(false)
			}
			if err := validateFlags(cmd); err != nil {
				return err
			}

			store, cfg, err := loadConfig()
			if err != nil {
				if cmd.Annotations[annotationConfigRecovery] != "true" {
					return fmt.Errorf("failed to load config: %w", err)
				}
				log.Warn().Err(err).Msg("ignoring unreadable config")
				store, cfg = nil, &config.Config{}
			} else {
				log.Debug().Str("path", store.Path()).Msg("config loaded")
			}

			loadedConfig, configStore = cfg, store
			return nil
		},
		// Default action: show today's roza.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(PrintVersion("{{.Version}}"))

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&FlagCountry, "country", "", "Override country")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.IntVar(&FlagMethod, "method", -1, "Override calculation method (0-23)")
	pf.IntVar(&FlagSchool, "school", -1, "Override school (0=Shafi, 1=Hanafi)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/ramadan-cli/)")
	pf.StringVar(&FlagDataDir, "data-dir", "", "Tracker data directory (default: ~/.local/share/ramadan-cli/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.BoolVar(&FlagNoColor, "no-color", false, "Disable colored output")
	pf.CountVarP(&FlagVerbose, "verbose", "v", "Increase log verbosity (-v warn, -vv info, -vvv debug)")

	// Register subcommands.
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newDayCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newLocateCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newFastCmd())
	rootCmd.AddCommand(newCharityCmd())
	rootCmd.AddCommand(newZakatCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("ramadan version %s\n", version)
}

func loadConfig() (*config.Store, *config.Config, error) {
	store, err := config.OpenDefault()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Config()
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

// loggerFrom returns the logger PersistentPreRunE attached to cmd.
func loggerFrom(cmd *cobra.Command) zerolog.Logger {
	if ctx := cmd.Context(); ctx != nil {
		return *zerolog.Ctx(ctx)
	}
	return zerolog.Nop()
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	var cfg config.Config
	if loadedConfig != nil {
		cfg = *loadedConfig
	}
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "city") {
		cfg.City = FlagCity
		// A city on the command line replaces configured coordinates.
		if !flagWasSet(flags, root, "latitude") && !flagWasSet(flags, root, "longitude") {
			cfg.Latitude, cfg.Longitude = 0, 0
		}
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = FlagCountry
	}
	if flagWasSet(flags, root, "latitude") {
		cfg.Latitude = FlagLatitude
	}
	if flagWasSet(flags, root, "longitude") {
		cfg.Longitude = FlagLongitude
	}
	if flagWasSet(flags, root, "method") {
		method := FlagMethod
		cfg.Method = &method
	} else if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "school") {
		school := FlagSchool
		cfg.School = &school
	} else if cfg.School == nil {
		cfg.School = defaults.School
	}
	if flagWasSet(flags, root, "cache-dir") {
		cfg.CacheDir = FlagCacheDir
	}
	if flagWasSet(flags, root, "data-dir") {
		cfg.DataDir = FlagDataDir
	}

	// Time format: CLI flag > config > default ("24h").
	if flagWasSet(flags, root, "time-format") {
		cfg.TimeFormat = FlagTimeFormat
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return &cfg
}

// validateFlags applies the config validation rules to explicitly set
// flags so "--method 99" fails the same way "config set method 99" does.
func validateFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	var probe config.Config
	for flag, key := range map[string]string{
		"latitude":    "latitude",
		"longitude":   "longitude",
		"method":      "method",
		"school":      "school",
		"time-format": "time_format",
	} {
		if !flagWasSet(flags, root, flag) {
			continue
		}
		f := flags.Lookup(flag)
		if f == nil {
			f = root.Lookup(flag)
		}
		if err := probe.Set(key, f.Value.String()); err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
	}
	return nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
