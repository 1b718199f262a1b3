package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Intake.Server.Addr == "" {
		return errors.New("server address cannot be empty")
	}
	if _, err := net.ResolveTCPAddr("tcp", c.Intake.Server.Addr); err != nil {
		return fmt.Errorf("invalid server address: %v", err)
	}
	if c.Intake.Server.Timeout != "" {
		if _, err := time.ParseDuration(c.Intake.Server.Timeout); err != nil {
			return fmt.Errorf("invalid server timeout: %v", err)
		}
	}

	if c.Intake.Store.Path == "" {
		return errors.New("store path cannot be empty")
	}

	if c.Intake.Geo.Enabled {
		if c.Intake.Geo.Endpoint == "" {
			return errors.New("geo endpoint cannot be empty when geo is enabled")
		}
		if _, err := time.ParseDuration(c.Intake.Geo.Timeout); err != nil {
			return fmt.Errorf("invalid geo timeout: %v", err)
		}
	}

	if c.Intake.Chat.StreamDelayMs < 0 {
		return errors.New("chat stream_delay_ms cannot be negative")
	}
	return nil
}

// GeoTimeout returns the parsed geocoder timeout.
func (c *Config) GeoTimeout() time.Duration {
	d, err := time.ParseDuration(c.Intake.Geo.Timeout)
	if err != nil {
		return 8 * time.Second
	}
	return d
}

// StreamDelay returns the per-character streaming delay.
func (c *Config) StreamDelay() time.Duration {
	return time.Duration(c.Intake.Chat.StreamDelayMs) * time.Millisecond
}
