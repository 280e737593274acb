package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type TelegramConfig struct {
	Token          string  `yaml:"token"`
	AdminChatIDs   []int64 `yaml:"admin_chat_ids"`
	RequestTimeout int     `yaml:"request_timeout_seconds"`
	PollTimeout    int     `yaml:"poll_timeout_seconds"`
}

type StorageConfig struct {
	CSVPath     string `yaml:"csv_path"`
	DownloadDir string `yaml:"download_dir"`
}

type DashboardConfig struct {
	PasswordHash string `yaml:"password_hash"` // bcrypt hash of the admin password
	JWTSecret    string `yaml:"jwt_secret"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Storage   StorageConfig   `yaml:"storage"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Load reads config/config.yaml, then lets .env / environment variables
// override the secrets so tokens never have to live in the yaml file.
func Load(path string) (*Config, error) {
	// .env is optional; real deployments set actual env vars
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		derr := yaml.NewDecoder(f).Decode(&cfg)
		if derr != nil && !errors.Is(derr, io.EOF) { // empty file is fine
			return nil, fmt.Errorf("parse %s: %w", path, derr)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("ADMIN_CHAT_ID"); v != "" {
		ids, perr := parseAdminIDs(v)
		if perr != nil {
			return nil, perr
		}
		cfg.Telegram.AdminChatIDs = ids
	}
	if v := os.Getenv("ADMIN_PASSWORD_HASH"); v != "" {
		cfg.Dashboard.PasswordHash = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Dashboard.JWTSecret = v
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Storage.CSVPath == "" {
		cfg.Storage.CSVPath = "applications.csv"
	}
	if cfg.Storage.DownloadDir == "" {
		cfg.Storage.DownloadDir = "downloaded_pdfs"
	}
	if cfg.Telegram.RequestTimeout == 0 {
		cfg.Telegram.RequestTimeout = 30
	}
	if cfg.Telegram.PollTimeout == 0 {
		cfg.Telegram.PollTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// validate refuses to start on placeholder credentials, so a half-filled
// .env fails loudly instead of producing a bot that silently ignores admins.
func (c *Config) validate() error {
	if c.Telegram.Token == "" || c.Telegram.Token == "your_bot_token_here" {
		return fmt.Errorf("BOT_TOKEN is not set (get one from @BotFather)")
	}
	if len(c.Telegram.AdminChatIDs) == 0 {
		return fmt.Errorf("ADMIN_CHAT_ID is not set (get yours from @userinfobot)")
	}
	if len(c.Telegram.AdminChatIDs) == 1 && c.Telegram.AdminChatIDs[0] == 123456789 {
		return fmt.Errorf("ADMIN_CHAT_ID is still the placeholder value")
	}
	if c.Dashboard.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	if c.Dashboard.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is not set")
	}
	return nil
}

func parseAdminIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_ID must be a number or comma-separated numbers, got %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
