package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds agent-level settings. Station routing lives in the Store, not
// here: this is how the process runs, not what it prints to.
type Config struct {
	Port           string
	RenderEndpoint string
	RenderTimeout  time.Duration
	LogLevel       string
	LogFormat      string
	DataDir        string
	HistorySize    int
}

// Load reads configuration with the usual priority: environment variables
// with the PRINTAGENT_ prefix, then config.toml in the data dir or working
// dir, then built-in defaults.
func Load() (*Config, error) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath(dataDir)

	v.SetDefault("agent.port", "3044")
	v.SetDefault("agent.data_dir", dataDir)
	v.SetDefault("agent.history_size", 100)
	v.SetDefault("render.endpoint", "https://api.labelary.com/v1/printers")
	v.SetDefault("render.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults and env vars apply.
	}

	v.SetEnvPrefix("PRINTAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("agent.port"),
		RenderEndpoint: v.GetString("render.endpoint"),
		RenderTimeout:  v.GetDuration("render.timeout"),
		LogLevel:       v.GetString("log.level"),
		LogFormat:      v.GetString("log.format"),
		DataDir:        v.GetString("agent.data_dir"),
		HistorySize:    v.GetInt("agent.history_size"),
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return cfg, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	return filepath.Join(home, ".print-agent"), nil
}
