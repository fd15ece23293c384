// Package config provides YAML-based configuration loading for Pressplan.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Pressplan configuration, loaded from config.yaml.
type Config struct {
	Owner    string         `yaml:"owner"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Work     WorkConfig     `yaml:"work"`
	Notify   NotifyConfig   `yaml:"notify"`
	Jobs     JobsConfig     `yaml:"jobs"`
}

// DatabaseConfig selects and configures the persistence backend.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // sqlite or mysql
	Path     string `yaml:"path"`   // sqlite file path
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ServerConfig holds the HTTP facade settings.
type ServerConfig struct {
	Port       int `yaml:"port"`
	RatePerSec int `yaml:"rate_per_sec"` // per-client request budget
	RateBurst  int `yaml:"rate_burst"`
}

// WorkConfig selects the work-tracker backend for workId resolution.
type WorkConfig struct {
	Backend     string `yaml:"backend"` // db or github
	GitHubToken string `yaml:"github_token"`
}

// NotifyConfig wires optional digest destinations.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig holds Slack digest settings.
type SlackConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// DiscordConfig holds Discord digest settings.
type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// JobsConfig holds optional cron expressions (5-field) for the scheduled
// jobs the server runs. An empty expression disables the job.
type JobsConfig struct {
	DigestCron   string `yaml:"digest_cron"`
	AutofillCron string `yaml:"autofill_cron"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "pressplan.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" {
		c.Database.Name = "pressplan"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RatePerSec == 0 {
		c.Server.RatePerSec = 25
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = 50
	}
	if c.Work.Backend == "" {
		c.Work.Backend = "db"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Owner == "" {
		errs = append(errs, "owner is required")
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not sqlite or mysql", c.Database.Driver))
	}
	switch c.Work.Backend {
	case "db", "github":
	default:
		errs = append(errs, fmt.Sprintf("work.backend %q is not db or github", c.Work.Backend))
	}
	if c.Notify.Slack.BotToken != "" && c.Notify.Slack.ChannelID == "" {
		errs = append(errs, "notify.slack.channel_id is required with a bot token")
	}
	if c.Notify.Discord.BotToken != "" && c.Notify.Discord.ChannelID == "" {
		errs = append(errs, "notify.discord.channel_id is required with a bot token")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
