// Package config loads the client configuration from
// ~/.lifequest/config.yaml with environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerURL            string `mapstructure:"server_url"`
	DataDir              string `mapstructure:"data_dir"`
	TimeoutSeconds       int    `mapstructure:"timeout_seconds"`
	StaleMinutes         int    `mapstructure:"stale_minutes"`
	DesktopNotifications bool   `mapstructure:"desktop_notifications"`
}

func Default() Config {
	return Config{
		ServerURL:            "http://localhost:8080/api",
		TimeoutSeconds:       15,
		StaleMinutes:         5,
		DesktopNotifications: false,
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) StaleAfter() time.Duration {
	return time.Duration(c.StaleMinutes) * time.Minute
}

// SessionDBPath is the sqlite file holding the token and profile snapshot.
func (c Config) SessionDBPath() string {
	return filepath.Join(c.DataDir, "session.db")
}

// Load merges defaults, the config file (when present) and env overrides,
// in that order.
func Load() (Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err == nil {
		cfg.DataDir = filepath.Join(home, ".lifequest")
		if err := loadFile(filepath.Join(cfg.DataDir, "config.yaml"), &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("LIFEQUEST_SERVER_URL")); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LIFEQUEST_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v, ok := getEnvInt("LIFEQUEST_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.TimeoutSeconds = v
	}
	if v, ok := getEnvInt("LIFEQUEST_STALE_MINUTES"); ok && v > 0 {
		cfg.StaleMinutes = v
	}
	if v, ok := getEnvBool("LIFEQUEST_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
