package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Record source kinds
const (
	SourceStatic   = "static"
	SourceRemote   = "remote"
	SourcePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Source    SourceConfig
	Assets    AssetsConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cart      CartConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type SourceConfig struct {
	Kind            string
	BaseURL         string
	Timeout         time.Duration
	RefreshInterval time.Duration
}

type AssetsConfig struct {
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CartConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

// Validate checks settings that would otherwise fail at first use
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceStatic, SourcePostgres:
	case SourceRemote:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("SOURCE_BASE_URL is required when SOURCE_KIND is %q", SourceRemote)
		}
	default:
		return fmt.Errorf("unknown SOURCE_KIND %q", c.Source.Kind)
	}

	if c.Cart.TTL <= 0 {
		return fmt.Errorf("CART_TTL must be positive, got %s", c.Cart.TTL)
	}
	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit must allow at least one request per positive window")
	}

	return nil
}

func Load() *Config {
	// Values from .env become process env so AutomaticEnv sees them too
	_ = godotenv.Load()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("SOURCE_KIND", SourceStatic)
	viper.SetDefault("SOURCE_BASE_URL", "")
	viper.SetDefault("SOURCE_TIMEOUT", "10s")
	viper.SetDefault("SOURCE_REFRESH_INTERVAL", "0s")
	viper.SetDefault("ASSET_BASE_URL", "/assets/generated_images")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CART_TTL", "24h")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Source: SourceConfig{
			Kind:            strings.ToLower(viper.GetString("SOURCE_KIND")),
			BaseURL:         viper.GetString("SOURCE_BASE_URL"),
			Timeout:         viper.GetDuration("SOURCE_TIMEOUT"),
			RefreshInterval: viper.GetDuration("SOURCE_REFRESH_INTERVAL"),
		},
		Assets: AssetsConfig{
			BaseURL: viper.GetString("ASSET_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cart: CartConfig{
			TTL: viper.GetDuration("CART_TTL"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
