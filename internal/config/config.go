package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type GitHubConfig struct {
	Token string `toml:"token"`
	User  string `toml:"user"`
}

type SlackConfig struct {
	Token    string   `toml:"token"`
	Channels []string `toml:"channels"`
}

// GoogleAccount is one OAuth refresh-token triple. The same shape serves
// both calendar and mail accounts.
type GoogleAccount struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	CalendarID   string `toml:"calendar_id"`
}

// Configured reports whether the full credential triple is present.
func (a GoogleAccount) Configured() bool {
	return a.ClientID != "" && a.ClientSecret != "" && a.RefreshToken != ""
}

type StripeConfig struct {
	APIKey string `toml:"api_key"`
}

type VercelConfig struct {
	Token  string `toml:"token"`
	TeamID string `toml:"team_id"`
}

type PipelineConfig struct {
	// CollectorTimeoutSeconds bounds every collector call. A collector
	// exceeding it is treated like any other collector failure.
	CollectorTimeoutSeconds int `toml:"collector_timeout_seconds"`
}

func (p PipelineConfig) CollectorTimeout() time.Duration {
	if p.CollectorTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(p.CollectorTimeoutSeconds) * time.Second
}

type Config struct {
	LLM             LLMConfig      `toml:"llm"`
	GitHub          GitHubConfig   `toml:"github"`
	Slack           SlackConfig    `toml:"slack"`
	CalendarPrimary GoogleAccount  `toml:"calendar_primary"`
	CalendarTeam    GoogleAccount  `toml:"calendar_team"`
	MailPersonal    GoogleAccount  `toml:"mail_personal"`
	MailWork        GoogleAccount  `toml:"mail_work"`
	Stripe          StripeConfig   `toml:"stripe"`
	Vercel          VercelConfig   `toml:"vercel"`
	Pipeline        PipelineConfig `toml:"pipeline"`
}

// Load reads a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads CONFIG_PATH (default config/config.toml) and applies env
// overrides. A missing file is not fatal: a source without credentials
// degrades to an empty result instead of aborting the run, so an env-only
// setup is valid.
func LoadDefault() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.toml"
	}

	cfg, err := Load(path)
	if err != nil {
		cfg = &Config{}
	}
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	setenv(&c.LLM.Provider, "LLM_PROVIDER")
	setenv(&c.LLM.Model, "LLM_MODEL")
	setenv(&c.LLM.APIKey, "LLM_API_KEY")
	setenv(&c.LLM.BaseURL, "LLM_BASE_URL")
	setenv(&c.GitHub.Token, "GITHUB_TOKEN")
	setenv(&c.GitHub.User, "GITHUB_USER")
	setenv(&c.Slack.Token, "SLACK_TOKEN")
	setenv(&c.Stripe.APIKey, "STRIPE_API_KEY")
	setenv(&c.Vercel.Token, "VERCEL_TOKEN")
	setenv(&c.Vercel.TeamID, "VERCEL_TEAM_ID")
}

func setenv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
