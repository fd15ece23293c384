package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/pressplan/pressplan/internal/monthjob"
	"github.com/spf13/cobra"
)

func newFillCmd() *cobra.Command {
	var (
		configPath string
		year       int
		month      int
		clientID   string
	)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a month's calendar from cadence settings",
		Long: `Generates planned content items for the given month following each
client's weekly cadence. With --client only that client is filled, and a
month that is already at quota is reported as such.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, configPath, year, month, clientID)
		},
	}

	now := time.Now().UTC()
	cmd.Flags().StringVarP(&configPath, "config", "c", "pressplan.yaml", "path to Pressplan config file")
	cmd.Flags().IntVar(&year, "year", now.Year(), "target year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "target month (1-12)")
	cmd.Flags().StringVar(&clientID, "client", "", "fill a single client")
	return cmd
}

func runFill(cmd *cobra.Command, configPath string, year, month int, clientID string) error {
	out := cmd.OutOrStdout()
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if clientID != "" {
		created, err := monthjob.FillMonthForClient(gormDB, cfg.Owner, clientID, year, time.Month(month))
		if errors.Is(err, monthjob.ErrAlreadyFilled) {
			fmt.Fprintf(out, "%04d-%02d is already at quota for client %s, nothing to do\n", year, month, clientID)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Created %d items for client %s in %04d-%02d\n", created, clientID, year, month)
		return nil
	}

	created, err := monthjob.FillMonth(gormDB, cfg.Owner, year, time.Month(month))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %d items in %04d-%02d\n", created, year, month)
	return nil
}
