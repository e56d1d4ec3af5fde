package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageDriverMemory = "memory"
	StorageDriverRedis  = "redis"
)

type HTTPServer struct {
	Addr            string        `yaml:"address" env:"HTTP_ADDR" env-default:":8082"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Catalog points at the public product API. A zero Timeout leaves listing
// requests bounded only by the caller's context; shared product fetches fall
// back to a fixed limit.
type Catalog struct {
	BaseURL string        `yaml:"CATALOG_BASE_URL" env:"CATALOG_BASE_URL" env-default:"https://dummyjson.com"`
	Timeout time.Duration `yaml:"CATALOG_TIMEOUT" env:"CATALOG_TIMEOUT" env-default:"0s"`
}

type Storage struct {
	Driver    string        `yaml:"STORAGE_DRIVER" env:"STORAGE_DRIVER" env-default:"memory"`
	OpTimeout time.Duration `yaml:"STORAGE_OP_TIMEOUT" env:"STORAGE_OP_TIMEOUT" env-default:"3s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Checkout struct {
	RedirectDelay time.Duration `yaml:"REDIRECT_DELAY" env:"CHECKOUT_REDIRECT_DELAY" env-default:"2s"`
	RedirectTo    string        `yaml:"REDIRECT_TO" env:"CHECKOUT_REDIRECT_TO" env-default:"/"`
	SessionTTL    time.Duration `yaml:"SESSION_TTL" env:"CHECKOUT_SESSION_TTL" env-default:"30m"`
}

// RateConfig bounds how many orders one client may place per window.
type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"RATE_MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"RATE_WINDOW_SIZE" env-default:"1m"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"orders@storefront.local"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
}

func (s SendGrid) Enabled() bool {
	return s.APIKey != ""
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Catalog      Catalog      `yaml:"catalog"`
	Storage      Storage      `yaml:"storage"`
	RedisConnect RedisConnect `yaml:"redis"`
	Checkout     Checkout     `yaml:"checkout"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Otel         Otel         `yaml:"otel"`
}

func MustLoad() *Config {

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Ignoring unreadable .env file", slog.String("error", err.Error()))
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the YAML config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

// LoadConfigFromPath reads the YAML file at path, applies environment
// overrides and defaults, and validates cross-field requirements.
func LoadConfigFromPath(path string) (*Config, error) {

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {

	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverRedis:
		if c.RedisConnect.Host == "" {
			return fmt.Errorf("redis storage requires REDIS_HOST")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL is required")
	}

	if c.Checkout.RedirectDelay < 0 {
		return fmt.Errorf("checkout redirect delay must not be negative")
	}

	if c.RateConfig.MaxAttempts < 1 || c.RateConfig.WindowSize <= 0 {
		return fmt.Errorf("rate limit needs a positive MAX_ATTEMPTS and WINDOW_SIZE")
	}

	if c.Otel.SamplerRatio < 0 || c.Otel.SamplerRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLER_RATIO must be within [0, 1]")
	}

	return nil
}

func (r *RedisConnect) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
