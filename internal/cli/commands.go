package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/config"
	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  ramadan config set city Karachi\n  ramadan config set country Pakistan\n  ramadan config set method 1\n  ramadan config set school 1\n  ramadan config set time_format 12h",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	})

	recovery := map[string]string{annotationConfigRecovery: "true"}

	cmd.AddCommand(&cobra.Command{
		Use:         "reset",
		Short:       "Reset config to defaults",
		Long:        "Delete the config file and restore all settings to defaults.",
		Args:        cobra.NoArgs,
		Annotations: recovery,
		RunE:        runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:         "path",
		Short:       "Print config file path",
		Args:        cobra.NoArgs,
		Annotations: recovery,
		RunE:        runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	if cfg == nil {
		cfg = &config.Config{}
	}

	pairs := make([][2]string, 0, len(config.ValidKeys))
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Dim("(not set)")
		}
		// Add descriptive labels for method and school.
		if key == "method" && val != "" {
			shown = formatMethodValue(val)
		}
		if key == "school" && val != "" {
			shown = formatSchoolValue(val)
		}
		pairs = append(pairs, [2]string{key, shown})
	}

	lines := display.KeyValue(pairs)
	lines = append(lines, "", display.Dim(fmt.Sprintf("%s_* environment variables override the file.", config.EnvPrefix)))
	fmt.Fprintln(cmd.OutOrStdout(), display.Card("Configuration  "+display.Dim(configStore.Path()), lines...))
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := configStore.Set(key, value); err != nil {
		return err
	}
	loggerFrom(cmd).Debug().Str("key", key).Str("path", configStore.Path()).Msg("config updated")

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// runConfigGet prints one merged config value, empty when unset.
func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	if cfg == nil {
		cfg = &config.Config{}
	}
	val, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		path, err := config.Path()
		if err != nil {
			return err
		}
		if err := config.Remove(path); err != nil {
			return err
		}
	} else if err := configStore.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	if configStore != nil {
		fmt.Fprintln(cmd.OutOrStdout(), configStore.Path())
		return nil
	}
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method name to the numeric value.
func formatMethodValue(val string) string {
	for _, m := range CalculationMethods {
		if strconv.Itoa(m.ID) == val {
			return fmt.Sprintf("%s (%s)", val, m.Name)
		}
	}
	return val
}

// formatSchoolValue adds the school name to the numeric value.
func formatSchoolValue(val string) string {
	switch val {
	case "0":
		return "0 (Shafi)"
	case "1":
		return "1 (Hanafi)"
	default:
		return val
	}
}

// CalculationMethods lists all supported Al Adhan API calculation methods.
var CalculationMethods = []struct {
	ID   int
	Name string
}{
	{0, "Shia Ithna-Ashari (Jafari)"},
	{1, "University of Islamic Sciences, Karachi"},
	{2, "Islamic Society of North America (ISNA)"},
	{3, "Muslim World League (MWL)"},
	{4, "Umm Al-Qura University, Makkah"},
	{5, "Egyptian General Authority of Survey"},
	{7, "Institute of Geophysics, University of Tehran"},
	{8, "Gulf Region"},
	{9, "Kuwait"},
	{10, "Qatar"},
	{11, "Majlis Ugama Islam Singapura (Singapore)"},
	{12, "Union Organization Islamic de France"},
	{13, "Diyanet Isleri Baskanligi, Turkey (experimental)"},
	{14, "Spiritual Administration of Muslims of Russia"},
	{15, "Moonsighting Committee Worldwide"},
	{16, "Dubai (experimental)"},
	{17, "JAKIM (Malaysia)"},
	{18, "Tunisia"},
	{19, "Algeria"},
	{20, "KEMENAG (Indonesia)"},
	{21, "Morocco"},
	{22, "Comunidade Islamica de Lisboa (Portugal)"},
	{23, "Ministry of Awqaf, Jordan"},
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of all supported Al Adhan API calculation methods.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := display.NewTable([]string{"ID", "Name"})
			tbl.SetTitle("Supported calculation methods")
			for _, m := range CalculationMethods {
				tbl.AddRow([]string{strconv.Itoa(m.ID), m.Name})
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tbl.Render())
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Use --method <ID> to select a calculation method.")
			fmt.Fprintln(out, "If omitted, the API picks a default based on your location.")
			return nil
		},
	}
}
