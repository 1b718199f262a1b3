package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the complete service configuration. The structure matches the
// config.yaml file and can be overridden by INTAKE_* environment variables.

type Config struct {
	Intake IntakeConfig `json:"intake" mapstructure:"intake"`
}

type IntakeConfig struct {
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Catalogo CatalogoConfig `json:"catalogo" mapstructure:"catalogo"`
	Store    StoreConfig    `json:"store" mapstructure:"store"`
	Geo      GeoConfig      `json:"geo" mapstructure:"geo"`
	Chat     ChatConfig     `json:"chat" mapstructure:"chat"`
}

// ServerConfig contains HTTP server configuration

type ServerConfig struct {
	Addr    string `json:"addr" mapstructure:"addr"`
	Timeout string `json:"timeout" mapstructure:"timeout"`
}

// CatalogoConfig points at the contract catalog; an empty path uses the
// embedded default catalog.

type CatalogoConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StoreConfig contains the sqlite persistence configuration

type StoreConfig struct {
	Path string `json:"path" mapstructure:"path"`

	// AuditPath is the formalization audit trail database; empty disables it.
	AuditPath string `json:"audit_path" mapstructure:"audit_path"`
}

// GeoConfig contains the address-lookup service configuration

type GeoConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	Timeout  string `json:"timeout" mapstructure:"timeout"`
}

// ChatConfig contains conversation presentation settings

type ChatConfig struct {
	// StreamDelayMs paces streamed replies, one character at a time.
	StreamDelayMs int `json:"stream_delay_ms" mapstructure:"stream_delay_ms"`
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env first (ignore error if not present)
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.intake")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("INTAKE")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found, using defaults")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Intake.Store.Path = resolvePath(cfg.Intake.Store.Path)
	if cfg.Intake.Store.AuditPath != "" {
		cfg.Intake.Store.AuditPath = resolvePath(cfg.Intake.Store.AuditPath)
	}
	if cfg.Intake.Catalogo.Path != "" {
		cfg.Intake.Catalogo.Path = resolvePath(cfg.Intake.Catalogo.Path)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("INTAKE.SERVER.ADDR", ":8080")
	viper.SetDefault("INTAKE.SERVER.TIMEOUT", "30s")

	viper.SetDefault("INTAKE.STORE.PATH", "intake.db")
	viper.SetDefault("INTAKE.STORE.AUDIT_PATH", "intake_audit.db")
	viper.SetDefault("INTAKE.CATALOGO.PATH", "")

	viper.SetDefault("INTAKE.GEO.ENABLED", true)
	viper.SetDefault("INTAKE.GEO.ENDPOINT", "https://nominatim.openstreetmap.org")
	viper.SetDefault("INTAKE.GEO.TIMEOUT", "8s")

	viper.SetDefault("INTAKE.CHAT.STREAM_DELAY_MS", 20)
}

// resolvePath expands ~ to the user's home directory
func resolvePath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
