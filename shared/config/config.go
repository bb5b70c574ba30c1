package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Avinor     AvinorConfig     `yaml:"avinor"`
	Cargo      CargoConfig      `yaml:"cargo"`
	Display    DisplayConfig    `yaml:"display"`
	Email      EmailConfig      `yaml:"email"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Schedule   string           `yaml:"schedule"`
}

type AvinorConfig struct {
	FlightsURL  string `yaml:"flights_url"`
	AirlinesURL string `yaml:"airlines_url"`
	Airport     string `yaml:"airport"`
	TimeFrom    int    `yaml:"time_from"` // hours before now
	TimeTo      int    `yaml:"time_to"`   // hours after now
}

type CargoConfig struct {
	Codes    []string `yaml:"codes"`    // carrier codes treated as cargo unconditionally
	Keywords []string `yaml:"keywords"` // case-insensitive substrings matched against airline names
}

type DisplayConfig struct {
	Timezone  string `yaml:"timezone"`
	BoardPort int    `yaml:"board_port"`
}

type EmailConfig struct {
	Enabled    bool   `yaml:"enabled"`
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	if cfg.Email.Username == "" {
		cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Avinor.FlightsURL == "" {
		c.Avinor.FlightsURL = "https://asrv.avinor.no/XmlFeed/v1.0"
	}
	if c.Avinor.AirlinesURL == "" {
		c.Avinor.AirlinesURL = "https://asrv.avinor.no/airlineNames/v1.0"
	}
	if c.Avinor.Airport == "" {
		c.Avinor.Airport = "OSL"
	}
	if c.Avinor.TimeFrom == 0 {
		c.Avinor.TimeFrom = 1
	}
	if c.Avinor.TimeTo == 0 {
		c.Avinor.TimeTo = 24
	}
	if len(c.Cargo.Codes) == 0 {
		c.Cargo.Codes = []string{"CV", "RU", "QY", "5X", "FX", "DHL", "TAY"}
	}
	if len(c.Cargo.Keywords) == 0 {
		c.Cargo.Keywords = []string{"cargo", "freight"}
	}
	if c.Display.Timezone == "" {
		c.Display.Timezone = "Europe/Oslo"
	}
	if c.Display.BoardPort == 0 {
		c.Display.BoardPort = 8081
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8080
	}
	if c.Schedule == "" {
		c.Schedule = "0 */10 * * * *" // Every 10 minutes
	}
}

func (c *Config) validate() error {
	if c.Avinor.Airport == "" {
		return fmt.Errorf("airport code is required (avinor.airport)")
	}
	if c.Avinor.TimeFrom < 0 || c.Avinor.TimeTo < 0 {
		return fmt.Errorf("time window must not be negative (avinor.time_from, avinor.time_to)")
	}
	if c.Email.Enabled {
		if c.Email.Username == "" {
			return fmt.Errorf("email username is required when email is enabled (set EMAIL_USERNAME or email.username)")
		}
		if c.Email.Password == "" {
			return fmt.Errorf("email password is required when email is enabled (set EMAIL_PASSWORD or email.password)")
		}
		if c.Email.ToEmail == "" {
			return fmt.Errorf("email recipient is required when email is enabled (email.to_email)")
		}
	}
	return nil
}
