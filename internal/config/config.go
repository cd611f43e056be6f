package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDriverPersistent = "persistent"
	StorageDriverMemory     = "memory"
)

type Config struct {
	Port          string
	Environment   string
	LogLevel      string
	StorageDriver string
	Catalog       CatalogConfig
	Database      DatabaseConfig
	Mongo         MongoConfig
	Redis         RedisConfig
	S3            S3Config
}

type CatalogConfig struct {
	BaseCurrency        string
	PlaceholderImageURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr            string
	Password        string
	CountryCacheTTL time.Duration
}

type S3Config struct {
	Bucket    string
	Region    string
	Key       string
	Secret    string
	Endpoint  string
	PublicURL string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPersistent)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("COUNTRY_CACHE_TTL", "10m")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	ttl, err := time.ParseDuration(getEnvOrViper("COUNTRY_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid COUNTRY_CACHE_TTL: %w", err)
	}

	cfg := &Config{
		Port:          getEnvOrViper("PORT", "8080"),
		Environment:   getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:      getEnvOrViper("LOG_LEVEL", "info"),
		StorageDriver: strings.ToLower(getEnvOrViper("STORAGE_DRIVER", StorageDriverPersistent)),
		Catalog: CatalogConfig{
			BaseCurrency:        strings.ToUpper(getEnvOrViper("BASE_CURRENCY", "USD")),
			PlaceholderImageURL: getEnvOrViper("PLACEHOLDER_IMAGE_URL", "/static/placeholder.png"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getEnvOrViper("MONGO_URI", ""),
			Database: getEnvOrViper("MONGO_DATABASE", "storefront"),
		},
		Redis: RedisConfig{
			Addr:            getEnvOrViper("REDIS_ADDR", ""),
			Password:        getEnvOrViper("REDIS_PASSWORD", ""),
			CountryCacheTTL: ttl,
		},
		S3: S3Config{
			Bucket:    getEnvOrViper("S3_BUCKET", ""),
			Region:    getEnvOrViper("S3_REGION", "us-east-1"),
			Key:       getEnvOrViper("S3_KEY", ""),
			Secret:    getEnvOrViper("S3_SECRET", ""),
			Endpoint:  getEnvOrViper("S3_ENDPOINT", ""),
			PublicURL: getEnvOrViper("S3_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields for the selected storage driver
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPersistent:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when STORAGE_DRIVER is %s", StorageDriverPersistent)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.Catalog.BaseCurrency == "" {
		return fmt.Errorf("BASE_CURRENCY must not be empty")
	}
	if c.Redis.CountryCacheTTL <= 0 {
		return fmt.Errorf("COUNTRY_CACHE_TTL must be positive")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
