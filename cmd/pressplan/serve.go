package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressplan/pressplan/internal/config"
	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/monthjob"
	"github.com/pressplan/pressplan/internal/notify"
	"github.com/pressplan/pressplan/internal/notify/discord"
	"github.com/pressplan/pressplan/internal/notify/slack"
	"github.com/pressplan/pressplan/internal/server"
	"github.com/pressplan/pressplan/internal/stats"
	"github.com/pressplan/pressplan/internal/worktracker"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		Long:  "Launches the JSON API together with the configured digest and autofill jobs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pressplan.yaml", "path to Pressplan config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.Server.Port
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	tracker, err := buildTracker(cfg)
	if err != nil {
		return err
	}
	notifier, err := buildNotifier(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	jobs, err := startJobs(ctx, cfg, gormDB, notifier, log)
	if err != nil {
		return err
	}
	if jobs != nil {
		defer jobs.Stop()
	}

	return server.Start(ctx, server.StartOpts{
		DB:         gormDB,
		Tracker:    tracker,
		Port:       port,
		RatePerSec: float64(cfg.Server.RatePerSec),
		RateBurst:  cfg.Server.RateBurst,
		Log:        log,
		Out:        cmd.OutOrStdout(),
	})
}

// buildTracker selects the work-tracker backend. The db backend is the
// default and resolves per request transaction, so nil is returned for it.
func buildTracker(cfg *config.Config) (worktracker.Tracker, error) {
	switch cfg.Work.Backend {
	case "github":
		if cfg.Work.GitHubToken == "" {
			return nil, fmt.Errorf("serve: github work backend needs a token")
		}
		return worktracker.NewGitHub(cfg.Work.GitHubToken), nil
	default:
		return nil, nil
	}
}

// buildNotifier assembles the digest destinations that have credentials
// configured. An empty notifier is valid and broadcasts to nobody.
func buildNotifier(cfg *config.Config, log zerolog.Logger) (*notify.Notifier, error) {
	var adapters []notify.Adapter
	if cfg.Notify.Slack.BotToken != "" {
		a, err := slack.New(cfg.Notify.Slack.BotToken, cfg.Notify.Slack.ChannelID)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	if cfg.Notify.Discord.BotToken != "" {
		a, err := discord.New(cfg.Notify.Discord.BotToken, cfg.Notify.Discord.ChannelID)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return notify.New(log, adapters...), nil
}

// startJobs schedules the digest and autofill crons configured in the jobs
// section. Returns nil when no job is configured.
func startJobs(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, notifier *notify.Notifier, log zerolog.Logger) (*cron.Cron, error) {
	if cfg.Jobs.DigestCron == "" && cfg.Jobs.AutofillCron == "" {
		return nil, nil
	}

	c := cron.New()
	if cfg.Jobs.DigestCron != "" {
		if _, err := c.AddFunc(cfg.Jobs.DigestCron, func() {
			runDigest(ctx, cfg.Owner, gormDB, notifier, log)
		}); err != nil {
			return nil, fmt.Errorf("serve: digest cron %q: %w", cfg.Jobs.DigestCron, err)
		}
	}
	if cfg.Jobs.AutofillCron != "" {
		if _, err := c.AddFunc(cfg.Jobs.AutofillCron, func() {
			runAutofill(cfg.Owner, gormDB, log)
		}); err != nil {
			return nil, fmt.Errorf("serve: autofill cron %q: %w", cfg.Jobs.AutofillCron, err)
		}
	}
	c.Start()
	return c, nil
}

// runDigest sends today's progress to the configured destinations.
func runDigest(ctx context.Context, owner string, gormDB *gorm.DB, notifier *notify.Notifier, log zerolog.Logger) {
	if !notifier.Enabled() {
		return
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	items, err := item.ListRange(gormDB, owner, today, tomorrow)
	if err != nil {
		log.Error().Err(err).Msg("digest: list items")
		return
	}
	report := stats.Compute(items, today, tomorrow)
	notifier.Broadcast(ctx, notify.DailyDigest(owner, today, report))
}

// runAutofill tops up next month's calendar from the cadence settings.
func runAutofill(owner string, gormDB *gorm.DB, log zerolog.Logger) {
	next := time.Now().UTC().AddDate(0, 1, 0)
	created, err := monthjob.FillMonth(gormDB, owner, next.Year(), next.Month())
	if err != nil {
		log.Error().Err(err).Msg("autofill: fill month")
		return
	}
	log.Info().Int("created", created).Str("month", next.Format("2006-01")).Msg("autofill complete")
}
