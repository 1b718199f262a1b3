package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{Intake: IntakeConfig{
		Server: ServerConfig{Addr: ":8080", Timeout: "15s"},
		Store:  StoreConfig{Path: "intake.db"},
		Geo:    GeoConfig{Enabled: true, Endpoint: "https://nominatim.openstreetmap.org", Timeout: "8s"},
		Chat:   ChatConfig{StreamDelayMs: 20},
	}}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Intake.Server.Addr = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Intake.Server.Timeout = "quince segundos"
	assert.Error(t, cfg.Validate())
}

func TestValidate_EmptyStorePath(t *testing.T) {
	cfg := validConfig()
	cfg.Intake.Store.Path = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_GeoEnabledNeedsEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Intake.Geo.Endpoint = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Intake.Geo.Enabled = false
	cfg.Intake.Geo.Endpoint = ""
	assert.NoError(t, cfg.Validate(), "endpoint not required when geo is off")
}

func TestValidate_NegativeStreamDelay(t *testing.T) {
	cfg := validConfig()
	cfg.Intake.Chat.StreamDelayMs = -1
	assert.Error(t, cfg.Validate())
}

func TestGeoTimeout(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 8*time.Second, cfg.GeoTimeout())

	cfg.Intake.Geo.Timeout = "roto"
	assert.Equal(t, 8*time.Second, cfg.GeoTimeout(), "falls back to the default")
}

func TestStreamDelay(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 20*time.Millisecond, cfg.StreamDelay())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Intake.Server.Addr)
	assert.Equal(t, "intake.db", cfg.Intake.Store.Path)
	assert.True(t, cfg.Intake.Geo.Enabled)
	assert.NoError(t, cfg.Validate())
}
