package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"expensetrack/internal/logger"
	"expensetrack/internal/storage/sqlite"
	"expensetrack/internal/util"
)

type ServerConfig struct {
	Addr string `toml:"addr" env:"EXPENSETRACK_ADDR"`
}

type SessionConfig struct {
	Secret string `toml:"secret" env:"EXPENSETRACK_SESSION_SECRET"`
	// IdleTimeout is the inactivity window after which a session is
	// invalid. Every authenticated request refreshes it.
	IdleTimeout util.Duration `toml:"idle_timeout" env:"EXPENSETRACK_SESSION_IDLE_TIMEOUT"`
}

type TokenConfig struct {
	Secret string        `toml:"secret" env:"EXPENSETRACK_TOKEN_SECRET"`
	TTL    util.Duration `toml:"ttl" env:"EXPENSETRACK_TOKEN_TTL"`
}

type SMTPConfig struct {
	Host     string `toml:"host" env:"EXPENSETRACK_SMTP_HOST"`
	Port     int    `toml:"port" env:"EXPENSETRACK_SMTP_PORT"`
	Username string `toml:"username" env:"EXPENSETRACK_SMTP_USERNAME"`
	Password string `toml:"password" env:"EXPENSETRACK_SMTP_PASSWORD"`
	From     string `toml:"from" env:"EXPENSETRACK_SMTP_FROM"`
	// To is the destination address for the scheduled monthly report.
	To string `toml:"to" env:"EXPENSETRACK_REPORT_TO"`
}

type ReportConfig struct {
	// Schedule is a cron expression evaluated daily; the monthly job
	// itself only fires on the last calendar day of the month.
	Schedule string `toml:"schedule" env:"EXPENSETRACK_REPORT_SCHEDULE"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	DB      sqlite.Config `toml:"db"`
	Logger  logger.Config `toml:"logger"`
	Session SessionConfig `toml:"session"`
	Token   TokenConfig   `toml:"token"`
	SMTP    SMTPConfig    `toml:"smtp"`
	Report  ReportConfig  `toml:"report"`
}

const (
	defaultAddr        = ":8080"
	defaultDBFile      = "expensetrack.db"
	defaultIdleTimeout = util.Duration(15 * time.Minute)
	defaultTokenTTL    = util.Duration(24 * time.Hour)
	defaultSchedule    = "59 23 * * *"
)

// Parse reads the TOML configuration file when it exists, then applies
// environment variable overrides and fills in defaults. A missing file
// is not an error; everything can come from the environment.
func Parse(path string) (*Config, error) {
	conf := &Config{}

	if _, err := os.Stat(path); err == nil {
		if _, err = toml.DecodeFile(path, conf); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := env.Parse(conf); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	conf.applyDefaults()

	return conf, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.DB.Source == "" {
		c.DB.Source = defaultDBFile
	}
	if c.Session.IdleTimeout <= 0 {
		c.Session.IdleTimeout = defaultIdleTimeout
	}
	if c.Token.TTL <= 0 {
		c.Token.TTL = defaultTokenTTL
	}
	if c.Token.Secret == "" {
		c.Token.Secret = c.Session.Secret
	}
	if c.Report.Schedule == "" {
		c.Report.Schedule = defaultSchedule
	}
	if c.Logger.Level == "" {
		c.Logger.Level = logger.LevelInfo
	}
	if c.Logger.Format == "" {
		c.Logger.Format = logger.FormatText
	}
	if c.Logger.Output == "" {
		c.Logger.Output = "stdout"
	}
}

// Validate reports configuration the server cannot run without.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	return nil
}
