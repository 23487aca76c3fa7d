package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/coreybb/newsdash/delivery"
	"github.com/coreybb/newsdash/loader"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort         = "8080"
	defaultTimezone     = "Asia/Tokyo"
	defaultLogLevel     = "info"
	defaultFetchTimeout = 10 * time.Second
	defaultSMTPPort     = 587
	defaultDigestHour   = 8
	defaultFromName     = "AI News Dashboard"
)

type Config struct {
	Port         string        `yaml:"port"`
	DataSource   string        `yaml:"data_source"`
	Timezone     string        `yaml:"timezone"`
	LogLevel     string        `yaml:"log_level"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	Watch        bool          `yaml:"watch"`
	Mail         MailConfig    `yaml:"mail"`
}

type MailConfig struct {
	SMTPServer string   `yaml:"smtp_server"`
	SMTPPort   int      `yaml:"smtp_port"`
	Address    string   `yaml:"address"`
	Password   string   `yaml:"-"`
	FromName   string   `yaml:"from_name"`
	Recipients []string `yaml:"recipients"`
	DigestHour int      `yaml:"digest_hour"`
}

// SMTP returns the relay settings for the delivery package.
func (m MailConfig) SMTP() delivery.SMTPConfig {
	return delivery.SMTPConfig{
		Server:   m.SMTPServer,
		Port:     m.SMTPPort,
		Username: m.Address,
		Password: m.Password,
	}
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:         defaultPort,
		DataSource:   loader.DefaultSource,
		Timezone:     defaultTimezone,
		LogLevel:     defaultLogLevel,
		FetchTimeout: defaultFetchTimeout,
		Mail: MailConfig{
			SMTPPort:   defaultSMTPPort,
			FromName:   defaultFromName,
			DigestHour: defaultDigestHour,
		},
	}
}

// Load reads the optional YAML file at path, then .env, then the environment.
// Later sources override earlier ones.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: Failed to read .env file: %v", err)
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("NEWS_DATA_SOURCE"); v != "" {
		c.DataSource = v
	}
	if v := os.Getenv("DASHBOARD_TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.FetchTimeout = d
		} else {
			log.Printf("WARNING: Ignoring invalid FETCH_TIMEOUT %q: %v", v, err)
		}
	}
	if v := os.Getenv("NEWS_DATA_WATCH"); v != "" {
		c.Watch, _ = strconv.ParseBool(v)
	}

	if v := os.Getenv("SMTP_SERVER"); v != "" {
		c.Mail.SMTPServer = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Mail.SMTPPort = port
		} else {
			log.Printf("WARNING: Ignoring invalid SMTP_PORT %q", v)
		}
	}
	if v := os.Getenv("EMAIL_ADDRESS"); v != "" {
		c.Mail.Address = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		c.Mail.Password = v
	}
	if v := os.Getenv("EMAIL_FROM_NAME"); v != "" {
		c.Mail.FromName = v
	}

	recipients := os.Getenv("RECIPIENT_EMAILS")
	if recipients == "" {
		recipients = os.Getenv("RECIPIENT_EMAIL")
	}
	if recipients != "" {
		c.Mail.Recipients = delivery.ParseRecipients(recipients)
	}

	if v := os.Getenv("DIGEST_HOUR"); v != "" {
		if hour, err := strconv.Atoi(v); err == nil {
			c.Mail.DigestHour = hour
		} else {
			log.Printf("WARNING: Ignoring invalid DIGEST_HOUR %q", v)
		}
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataSource) == "" {
		return errors.New("data source must not be empty")
	}
	if c.Mail.DigestHour < 0 || c.Mail.DigestHour > 23 {
		return fmt.Errorf("digest hour must be between 0 and 23, got %d", c.Mail.DigestHour)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if !c.Mail.SMTP().Configured() {
		log.Println("WARNING: SMTP_SERVER/EMAIL_ADDRESS not set. Digest delivery is disabled.")
	}
	return nil
}

// Location resolves the configured display time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
