package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MockFailTimeout makes the mock device time out instead of answering.
const MockFailTimeout = "timeout"

// ClockFrequencies lists the SPI clock rates (kHz) the bridge firmware
// accepts.
var ClockFrequencies = []int{500, 1000, 5000, 10000}

// Config represents the application configuration.
type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Transfer TransferConfig `yaml:"transfer"`
	Clock    ClockConfig    `yaml:"clock"`
	Mock     MockConfig     `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// TransferConfig contains protocol round-trip deadlines.
type TransferConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	ResetTimeout time.Duration `yaml:"reset_timeout"`
}

// ClockConfig contains the SPI clock setting embedded alongside the
// register bytes.
type ClockConfig struct {
	FrequencyKHz int `yaml:"frequency_khz"`
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	Delay    time.Duration `yaml:"delay"`     // Artificial response delay
	FailWith string        `yaml:"fail_with"` // "" = succeed, "timeout", or a peer error line
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyUSB0" on Linux/Mac
			BaudRate: 115200,
		},
		Transfer: TransferConfig{
			Timeout:      5 * time.Second,
			ResetTimeout: 3 * time.Second,
		},
		Clock: ClockConfig{
			FrequencyKHz: 1000,
		},
		Mock: MockConfig{},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects settings the bridge firmware cannot honor.
func (c *Config) Validate() error {
	valid := false
	for _, khz := range ClockFrequencies {
		if c.Clock.FrequencyKHz == khz {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported clock frequency %d kHz (supported: %v)", c.Clock.FrequencyKHz, ClockFrequencies)
	}

	if c.Transfer.Timeout <= 0 {
		return fmt.Errorf("transfer timeout must be positive")
	}
	if c.Transfer.ResetTimeout <= 0 {
		return fmt.Errorf("reset timeout must be positive")
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Transfer.Timeout == 0 {
		c.Transfer.Timeout = def.Transfer.Timeout
	}
	if c.Transfer.ResetTimeout == 0 {
		c.Transfer.ResetTimeout = def.Transfer.ResetTimeout
	}

	if c.Clock.FrequencyKHz == 0 {
		c.Clock.FrequencyKHz = def.Clock.FrequencyKHz
	}
}
