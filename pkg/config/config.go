package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Window  WindowConfig  `yaml:"window"`
	Poll    PollConfig    `yaml:"poll"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Mock    MockConfig    `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port        string        `yaml:"port"`
	BaudRate    int           `yaml:"baud_rate"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	SettleDelay time.Duration `yaml:"settle_delay"` // Device reset grace period after opening
}

// WindowConfig contains rolling window configuration.
type WindowConfig struct {
	Points int `yaml:"points"` // Number of readings visible on each plot
}

// PollConfig contains acquisition loop timing.
type PollConfig struct {
	Interval time.Duration `yaml:"interval"` // Idle sleep when no bytes are waiting
}

// DisplayConfig contains dashboard window settings.
type DisplayConfig struct {
	Title  string  `yaml:"title"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // zerolog level name: debug, info, warn, error
}

// MockConfig contains simulated device configuration.
type MockConfig struct {
	SampleRate      time.Duration `yaml:"sample_rate"`      // Time between generated lines
	DisconnectAfter time.Duration `yaml:"disconnect_after"` // Simulated unplug, 0 = never
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:        "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate:    9600,
			ReadTimeout: time.Second,
			SettleDelay: 2 * time.Second,
		},
		Window: WindowConfig{
			Points: 100,
		},
		Poll: PollConfig{
			Interval: 100 * time.Millisecond,
		},
		Display: DisplayConfig{
			Title:  "Power Grid Monitoring Dashboard",
			Width:  1000,
			Height: 800,
		},
		Log: LogConfig{
			Level: "info",
		},
		Mock: MockConfig{
			SampleRate:      500 * time.Millisecond,
			DisconnectAfter: 0,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

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

// ensureDefaults ensures that all required fields have default values if missing.
// A settle delay of zero is a valid choice and is kept.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate <= 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}
	if c.Serial.ReadTimeout <= 0 {
		c.Serial.ReadTimeout = def.Serial.ReadTimeout
	}
	if c.Serial.SettleDelay < 0 {
		c.Serial.SettleDelay = def.Serial.SettleDelay
	}

	if c.Window.Points <= 0 {
		c.Window.Points = def.Window.Points
	}

	if c.Poll.Interval <= 0 {
		c.Poll.Interval = def.Poll.Interval
	}

	if c.Display.Title == "" {
		c.Display.Title = def.Display.Title
	}
	if c.Display.Width <= 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height <= 0 {
		c.Display.Height = def.Display.Height
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}

	if c.Mock.SampleRate <= 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
}
