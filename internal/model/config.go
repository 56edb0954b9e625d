package model

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the root structure loaded from configs/config.yml.
// Every field has a working default so the bridge can also be configured
// purely through environment variables.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	HTTP   HTTPConfig   `yaml:"http"`
	Store  StoreConfig  `yaml:"store"`
}

// SerialConfig defines the TIC serial input.
type SerialConfig struct {
	Device   string `yaml:"device"`    // serial device path (e.g. /dev/ttyAMA0)
	Baud     int    `yaml:"baud"`      // baud rate, historical mode is 1200
	RetrySec int    `yaml:"retry_sec"` // seconds between reopen attempts after a source failure
}

// MQTTConfig defines the broker the records are published to.
// An empty broker URL disables publishing.
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// HTTPConfig defines the observation web server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig defines the local record archive.
type StoreConfig struct {
	Path string `yaml:"path"`
	Keep int    `yaml:"keep"` // maximum number of retained records
}

// LoadConfig reads the YAML configuration at path, then applies environment
// overrides and defaults. An empty path skips the file and configures the
// bridge from environment and defaults alone.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv overrides file values with TELEINFO_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("TELEINFO_SERIAL_DEVICE"); v != "" {
		c.Serial.Device = v
	}
	if v := os.Getenv("TELEINFO_SERIAL_BAUD"); v != "" {
		if baud, err := strconv.Atoi(v); err == nil {
			c.Serial.Baud = baud
		}
	}
	if v := os.Getenv("TELEINFO_MQTT_BROKER"); v != "" {
		c.MQTT.Broker = v
	}
	if v := os.Getenv("TELEINFO_MQTT_TOPIC_PREFIX"); v != "" {
		c.MQTT.TopicPrefix = v
	}
	if v := os.Getenv("TELEINFO_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("TELEINFO_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
}

// applyDefaults fills every still-empty field.
func (c *Config) applyDefaults() {
	if c.Serial.Device == "" {
		c.Serial.Device = "/dev/ttyAMA0"
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = 1200
	}
	if c.Serial.RetrySec == 0 {
		c.Serial.RetrySec = 5
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "teleinfo-bridge"
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "teleinfo"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Store.Path == "" {
		c.Store.Path = "tmp/teleinfo.db"
	}
	if c.Store.Keep == 0 {
		c.Store.Keep = 1000
	}
}
