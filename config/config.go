package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverS3       = "s3"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort    int
	JWTSecretKey  string
	AdminPassword string

	StorageDriver string
	StateKey      string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	RoundNamesLocale string
	DiscordBotToken  string
	DiscordChannelID string

	CORSAllowedOrigins []string
	LogLevel           slog.Level
}

// R2Configured reports whether all S3 API credentials for R2 are present.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func (c *Config) DiscordConfigured() bool {
	return c.DiscordBotToken != "" && c.DiscordChannelID != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Ошибку не считаем фатальной: .env есть только локально.
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	jwtKey := get("JWT_SECRET_KEY", "")
	if jwtKey == "" {
		return nil, errors.New("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := strconv.Atoi(get("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	cfg := &Config{
		ServerPort:    port,
		JWTSecretKey:  jwtKey,
		AdminPassword: get("ADMIN_PASSWORD", "123"),

		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", DriverMemory)),
		StateKey:      get("STATE_KEY", "tournament-storage"),
		DatabaseURL:   get("DATABASE_URL", ""),
		MongoURI:      get("MONGO_URI", ""),
		MongoDatabase: get("MONGO_DATABASE", "tournament"),

		R2AccountID:       get("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     get("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: get("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      get("R2_BUCKET_NAME", ""),
		R2PublicBaseURL:   get("R2_PUBLIC_BASE_URL", ""),

		RoundNamesLocale: strings.ToLower(get("ROUND_NAMES_LOCALE", "en")),
		DiscordBotToken:  get("DISCORD_BOT_TOKEN", ""),
		DiscordChannelID: get("DISCORD_CHANNEL_ID", ""),

		CORSAllowedOrigins: splitOrigins(get("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:           level,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for STORAGE_DRIVER=postgres")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for STORAGE_DRIVER=mongo")
		}
	case DriverS3:
		if !c.R2Configured() {
			return errors.New("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required for STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.RoundNamesLocale != "en" && c.RoundNamesLocale != "es" {
		return fmt.Errorf("ROUND_NAMES_LOCALE must be en or es, got %q", c.RoundNamesLocale)
	}
	if (c.DiscordBotToken == "") != (c.DiscordChannelID == "") {
		return errors.New("DISCORD_BOT_TOKEN and DISCORD_CHANNEL_ID must be set together")
	}
	return nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
