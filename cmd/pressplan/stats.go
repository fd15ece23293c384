package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var (
		configPath string
		year       int
		month      int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a month's progress table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, configPath, year, month)
		},
	}

	now := time.Now().UTC()
	cmd.Flags().StringVarP(&configPath, "config", "c", "pressplan.yaml", "path to Pressplan config file")
	cmd.Flags().IntVar(&year, "year", now.Year(), "target year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "target month (1-12)")
	return cmd
}

func runStats(cmd *cobra.Command, configPath string, year, month int) error {
	out := cmd.OutOrStdout()
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	items, err := item.ListMonth(gormDB, cfg.Owner, year, time.Month(month))
	if err != nil {
		return err
	}
	report := stats.ComputeMonth(items, year, time.Month(month))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTOTAL\tDONE\tREMAINING\tREMAINING%")
	for _, d := range report.Days {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d%%\n",
			d.Date.Format("Mon 2006-01-02"), d.Total, d.Done, d.RemainingCount, d.RemainingPct)
	}
	w.Flush()

	fmt.Fprintln(out)
	for _, wk := range report.Weeks {
		fmt.Fprintf(out, "Week of %s: %d/%d done\n", wk.Monday.Format("2006-01-02"), wk.Done, wk.Total)
	}
	fmt.Fprintf(out, "Month: %d/%d done\n", report.Month.Done, report.Month.Total)
	return nil
}
