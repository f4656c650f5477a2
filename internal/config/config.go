package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/nikitkaralius/weeklypoll/internal/polls"
	"github.com/nikitkaralius/weeklypoll/internal/scheduler"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	BotToken    string `yaml:"bot_token" env:"BOT_TOKEN" env-required:"true"`
	GroupChatID int64  `yaml:"group_chat_id" env:"GROUP_CHAT_ID"`

	Storage     string `yaml:"storage" env:"STORAGE"`
	DataDir     string `yaml:"data_dir" env:"DATA_DIR" env-default:"."`
	DatabaseDSN string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`

	Timezone  string `yaml:"timezone" env:"TIMEZONE" env-default:"Asia/Tashkent"`
	PollAt    string `yaml:"poll_at" env:"POLL_AT" env-default:"thu 08:00"`
	SummaryAt string `yaml:"summary_at" env:"SUMMARY_AT" env-default:"sat 20:00"`
	Locale    string `yaml:"locale" env:"LOCALE" env-default:"ru"`

	WebhookURL string `yaml:"webhook_url" env:"WEBHOOK_URL"`
	HTTPAddr   string `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`

	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogVerbose bool   `yaml:"log_verbose" env:"LOG_VERBOSE"`
}

// Load reads a .env file when present, then the YAML file at path (if any),
// then the environment, which wins over both.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// env-required accepts a variable that is set but empty.
	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN is required")
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.Storage == "" {
		c.Storage = StorageFile
		if c.DatabaseDSN != "" {
			c.Storage = StoragePostgres
		}
	}
	switch c.Storage {
	case StorageFile, StorageMemory:
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("POSTGRES_DSN is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	return nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Schedules returns the poll and summary slots.
func (c *Config) Schedules() (poll, summary scheduler.Weekly, err error) {
	loc, err := c.Location()
	if err != nil {
		return poll, summary, err
	}
	if poll, err = scheduler.ParseWeekly(c.PollAt, loc); err != nil {
		return poll, summary, err
	}
	if summary, err = scheduler.ParseWeekly(c.SummaryAt, loc); err != nil {
		return poll, summary, err
	}
	return poll, summary, nil
}

func (c *Config) Labels() (polls.Labels, error) {
	return polls.LabelsFor(c.Locale)
}
