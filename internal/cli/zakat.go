package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-cli/internal/display"
	"github.com/smokyabdulrahman/ramadan-cli/internal/zakat"
)

var (
	zakatAssets zakat.Assets
	zakatPrices zakat.Prices
	flagBasis   string
)

func newZakatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zakat",
		Short: "Calculate zakat on your wealth",
		Long: `Work out whether zakat is due and how much, at 2.5% of net wealth.
All money values share one currency; metal prices are per gram in that currency.

Example:
  ramadan zakat --cash 5000 --savings 12000 --gold-grams 20 --gold-price 95`,
		Args: cobra.NoArgs,
		RunE: runZakat,
	}

	f := cmd.Flags()
	f.Float64Var(&zakatAssets.Cash, "cash", 0, "Cash in hand")
	f.Float64Var(&zakatAssets.Savings, "savings", 0, "Bank savings")
	f.Float64Var(&zakatAssets.Investments, "investments", 0, "Shares, funds and business stock")
	f.Float64Var(&zakatAssets.GoldGrams, "gold-grams", 0, "Gold owned, in grams")
	f.Float64Var(&zakatAssets.SilverGrams, "silver-grams", 0, "Silver owned, in grams")
	f.Float64Var(&zakatAssets.Liabilities, "liabilities", 0, "Debts due now")
	f.Float64Var(&zakatPrices.GoldPerGram, "gold-price", 0, "Gold price per gram")
	f.Float64Var(&zakatPrices.SilverPerGram, "silver-price", 0, "Silver price per gram")
	f.StringVar(&flagBasis, "basis", string(zakat.Gold), "Nisab basis: gold or silver")

	return cmd
}

func runZakat(cmd *cobra.Command, args []string) error {
	basis, err := zakat.ParseBasis(flagBasis)
	if err != nil {
		return err
	}

	r, err := zakat.Calculate(zakatAssets, zakatPrices, basis)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return writeJSON(out, r)
	}

	pairs := [][2]string{
		{"Cash & savings", formatAmount(zakatAssets.Cash + zakatAssets.Savings)},
		{"Investments", formatAmount(zakatAssets.Investments)},
		{"Gold", formatAmount(r.GoldValue)},
		{"Silver", formatAmount(r.SilverValue)},
		{"Liabilities", "-" + formatAmount(zakatAssets.Liabilities)},
		{"Net wealth", display.Bold(formatAmount(r.Net))},
		{"Nisab", fmt.Sprintf("%s (%.2f g %s)", formatAmount(r.Nisab), basis.Grams(), basis)},
	}
	lines := display.KeyValue(pairs)

	if r.Due {
		lines = append(lines, "", display.Green("Zakat due: "+display.Bold(formatAmount(r.Amount))))
	} else {
		lines = append(lines, "", display.Dim("Below the nisab: no zakat is due."))
	}

	fmt.Fprintln(out, display.Card("Zakat", lines...))
	return nil
}
