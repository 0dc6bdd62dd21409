package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/quantbr/fiiscan/internal/app"
	"github.com/quantbr/fiiscan/internal/core"
	"github.com/quantbr/fiiscan/internal/format"
	"github.com/quantbr/fiiscan/internal/logger"
	"github.com/spf13/cobra"
)

var (
	screenMinYield     float64
	screenMaxPVP       float64
	screenMaxVacancy   float64
	screenMinLiquidity float64
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Fetch the listing and print the funds passing the thresholds",
	Long: `Fetch the current FII listing, apply the screening thresholds and print
the matching funds sorted by dividend yield. Thresholds left unset fall
back to the widest bounds the dataset allows, so they exclude nothing.`,
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().Float64Var(&screenMinYield, "min-dy", 0, "Minimum dividend yield, percent")
	screenCmd.Flags().Float64Var(&screenMaxPVP, "max-pvp", 0, "Maximum price to book value")
	screenCmd.Flags().Float64Var(&screenMaxVacancy, "max-vacancy", 0, "Maximum average vacancy, percent")
	screenCmd.Flags().Float64Var(&screenMinLiquidity, "min-liquidity", 0, "Minimum daily liquidity, BRL")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a := app.New(cfg, log)
	ctx := cmd.Context()

	bounds, ok, err := a.Bounds(ctx)
	if err != nil {
		return fmt.Errorf("fetching listing: %w", err)
	}
	if !ok {
		fmt.Println("The listing is empty; nothing to screen.")
		return nil
	}

	criteria := bounds.Widest()
	if cmd.Flags().Changed("min-dy") {
		criteria.MinDividendYield = screenMinYield
	}
	if cmd.Flags().Changed("max-pvp") {
		criteria.MaxPriceToBook = screenMaxPVP
	}
	if cmd.Flags().Changed("max-vacancy") {
		criteria.MaxVacancyRate = screenMaxVacancy
	}
	if cmd.Flags().Changed("min-liquidity") {
		criteria.MinLiquidity = screenMinLiquidity
	}

	result, err := a.Screen(ctx, criteria)
	if err != nil {
		return fmt.Errorf("screening: %w", err)
	}

	fmt.Printf("Found %d of %d funds\n", result.Summary.Found, result.Summary.Total)
	if result.Filtered.Empty() {
		return nil
	}
	fmt.Printf("Mean DY: %s   Mean P/VP: %s\n\n",
		format.Percent(result.Summary.MeanDividendYield),
		format.Ratio(result.Summary.MeanPriceToBook),
	)

	printFunds(result.Filtered.Records)

	segments, err := a.Segments(ctx, criteria)
	if err != nil {
		return fmt.Errorf("aggregating segments: %w", err)
	}
	fmt.Println()
	printSegments(segments)

	return nil
}

func printFunds(records []core.FundRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tSEGMENT\tQUOTE\tDY\tP/VP\tVACANCY\tLIQUIDITY")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Ticker,
			r.Segment,
			format.Currency(r.Quote),
			format.Percent(r.DividendYield),
			format.Ratio(r.PriceToBook),
			format.Percent(r.VacancyRate),
			format.GroupedCurrency(r.Liquidity),
		)
	}
	w.Flush()
}

func printSegments(segments []core.SegmentSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEGMENT\tCOUNT\tMEAN DY\tMEAN P/VP\tMEAN VACANCY\tMEAN LIQUIDITY")
	for _, s := range segments {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			s.Segment,
			s.Count,
			format.Percent(s.MeanDividendYield),
			format.Ratio(s.MeanPriceToBook),
			format.Percent(s.MeanVacancyRate),
			format.GroupedCurrency(s.MeanLiquidity),
		)
	}
	w.Flush()
}
