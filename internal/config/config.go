package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Env        string         `yaml:"env" env:"APP_ENV" env-default:"local"`
	DataDir    string         `yaml:"data_dir" env:"DATA_DIR" env-default:"data"`
	DateLayout string         `yaml:"date_layout" env:"DATE_LAYOUT" env-default:"1/2/2006"`
	Log        LogConfig      `yaml:"log"`
	Storage    StorageConfig  `yaml:"storage"`
	Random     RandomConfig   `yaml:"random_guest"`
	WhatsApp   WhatsAppConfig `yaml:"whatsapp"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
	File   string `yaml:"file" env:"LOG_FILE" env-default:""`
}

type StorageConfig struct {
	Driver       string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	Key          string        `yaml:"key" env:"STORAGE_KEY" env-default:"@wedding_guests"`
	RedisURL     string        `yaml:"redis_url" env:"REDIS_URL" env-default:""`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"STORAGE_WRITE_TIMEOUT" env-default:"5s"`
}

type RandomConfig struct {
	URL     string        `yaml:"url" env:"RANDOM_GUEST_URL" env-default:"https://randomuser.me/api/"`
	Timeout time.Duration `yaml:"timeout" env:"RANDOM_GUEST_TIMEOUT" env-default:"10s"`
}

type WhatsAppConfig struct {
	Enabled    bool   `yaml:"enabled" env:"WHATSAPP_ENABLED" env-default:"false"`
	DataDir    string `yaml:"data_dir" env:"WHATSAPP_DATA_DIR" env-default:""`
	OwnerPhone string `yaml:"owner_phone" env:"WHATSAPP_OWNER_PHONE" env-default:""`
}

// LoadConfig loads configuration from an optional YAML file, a .env file
// and environment variables, in increasing order of precedence
func LoadConfig(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(".env")

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.WhatsApp.DataDir == "" {
		c.WhatsApp.DataDir = c.DataDir
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "bolt", "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return errors.New("storage key must not be empty")
	}
	if c.WhatsApp.Enabled && c.WhatsApp.OwnerPhone == "" {
		return errors.New("WHATSAPP_OWNER_PHONE is required when WhatsApp is enabled")
	}
	return nil
}
