package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pressplan/pressplan/internal/monthjob"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newEmptyCmd() *cobra.Command {
	var (
		configPath string
		year       int
		month      int
		clientID   string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "empty",
		Short: "Remove all of a month's items",
		Long: `Deletes every item in the given month, including done ones. Asks for
confirmation when run interactively; non-interactive runs need --yes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmpty(cmd, configPath, year, month, clientID, yes)
		},
	}

	now := time.Now().UTC()
	cmd.Flags().StringVarP(&configPath, "config", "c", "pressplan.yaml", "path to Pressplan config file")
	cmd.Flags().IntVar(&year, "year", now.Year(), "target year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "target month (1-12)")
	cmd.Flags().StringVar(&clientID, "client", "", "empty a single client")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runEmpty(cmd *cobra.Command, configPath string, year, month int, clientID string, skipConfirm bool) error {
	out := cmd.OutOrStdout()
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if !skipConfirm {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("refusing to empty %04d-%02d without --yes on a non-interactive run", year, month)
		}
		if !confirmEmpty(cmd, year, month, clientID) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	removed, err := monthjob.EmptyMonth(gormDB, cfg.Owner, year, time.Month(month), clientID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %d items from %04d-%02d\n", removed, year, month)
	return nil
}

func confirmEmpty(cmd *cobra.Command, year, month int, clientID string) bool {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	scope := fmt.Sprintf("%04d-%02d", year, month)
	if clientID != "" {
		scope += " for client " + clientID
	}
	fmt.Fprintf(out, "WARNING: This will permanently delete every item in %s, done ones included.\n", scope)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}
