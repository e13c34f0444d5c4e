package cli

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
	"github.com/smokyabdulrahman/ramadan-cli/internal/tracker"
)

var (
	flagCharityCurrency string
	flagCharityNote     string
	flagCharityDate     string
)

func newCharityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "charity",
		Aliases: []string{"sadaqah"},
		Short:   "Log donations made during Ramadan",
		Args:    cobra.NoArgs,
		RunE:    runCharityList,
	}

	add := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a donation",
		Args:  cobra.ExactArgs(1),
		RunE:  runCharityAdd,
	}
	add.Flags().StringVarP(&flagCharityCurrency, "currency", "c", "USD", "Currency code")
	add.Flags().StringVarP(&flagCharityNote, "note", "n", "", "Who or what the donation was for")
	add.Flags().StringVar(&flagCharityDate, "date", "", "Date of the donation, YYYY-MM-DD (default: now)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List donations and totals per currency",
		Args:  cobra.NoArgs,
		RunE:  runCharityList,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a donation by ID",
		Args:  cobra.ExactArgs(1),
		RunE:  runCharityRemove,
	})

	return cmd
}

func runCharityAdd(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: must be a number", args[0])
	}

	var at time.Time
	if flagCharityDate != "" {
		at, err = time.Parse(tracker.DateLayout, flagCharityDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: use YYYY-MM-DD", flagCharityDate)
		}
	}

	store, err := openTracker(cmd)
	if err != nil {
		return err
	}
	d, err := store.AddDonation(amount, flagCharityCurrency, flagCharityNote, at)
	if err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	if FlagJSON {
		return writeJSON(cmd.OutOrStdout(), d)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s (id %s).\n", formatAmount(d.Amount), d.Currency, d.ID)
	return nil
}

func runCharityRemove(cmd *cobra.Command, args []string) error {
	store, err := openTracker(cmd)
	if err != nil {
		return err
	}
	d, err := store.RemoveDonation(args[0])
	if err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s from %s.\n", formatAmount(d.Amount), d.Currency, d.At.Format(tracker.DateLayout))
	return nil
}

type charityJSON struct {
	Donations []tracker.Donation `json:"donations"`
	Totals    map[string]float64 `json:"totals"`
}

func runCharityList(cmd *cobra.Command, args []string) error {
	store, err := openTracker(cmd)
	if err != nil {
		return err
	}

	donations := store.Donations()
	totals := store.TotalsByCurrency()

	out := cmd.OutOrStdout()
	if FlagJSON {
		return writeJSON(out, charityJSON{Donations: donations, Totals: totals})
	}

	if len(donations) == 0 {
		fmt.Fprintln(out, "No donations logged yet. Run 'ramadan charity add <amount>'.")
		return nil
	}

	tbl := display.NewTable([]string{"Date", "Amount", "Currency", "Note", "ID"})
	tbl.SetTitle("Charity log")
	for _, d := range donations {
		tbl.AddRow([]string{
			d.At.Format(tracker.DateLayout),
			formatAmount(d.Amount),
			d.Currency,
			d.Note,
			d.ID.String(),
		})
	}
	fmt.Fprint(out, tbl.Render())

	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	pairs := make([][2]string, len(currencies))
	for i, c := range currencies {
		pairs[i] = [2]string{c, formatAmount(totals[c])}
	}
	fmt.Fprintln(out, display.Card("Totals", display.KeyValue(pairs)...))
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
