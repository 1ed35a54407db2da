package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds application configuration.
type Settings struct {
	Database     DatabaseSettings     `mapstructure:"database"`
	Jurisdiction JurisdictionSettings `mapstructure:"jurisdiction"`
	Log          LogSettings          `mapstructure:"log"`
	Server       ServerSettings       `mapstructure:"server"`
	Calculation  CalculationSettings  `mapstructure:"calculation"`
}

// DatabaseSettings holds sqlite settings. An empty path keeps drafts in memory.
type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// JurisdictionSettings points at an optional YAML table override.
type JurisdictionSettings struct {
	TablePath string `mapstructure:"table_path"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type ServerSettings struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type CalculationSettings struct {
	ApplyChildTaxCredit bool `mapstructure:"apply_child_tax_credit"`
}

// DefaultDatabasePath is where drafts are kept when nothing else is configured.
func DefaultDatabasePath() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "taxpilot", "taxpilot.db")
}

// LoadSettings reads configuration from a .env file, a YAML config file and
// the environment, in increasing order of precedence. Env var overrides use
// the prefix TAXPILOT_, e.g. TAXPILOT_LOG_LEVEL=debug.
func LoadSettings() (Settings, error) {
	// a missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("jurisdiction.table_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8081"})
	v.SetDefault("calculation.apply_child_tax_credit", false)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("TAXPILOT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "taxpilot"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TAXPILOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return s, nil
}

func marshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
