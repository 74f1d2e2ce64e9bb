package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/andyrosty/diet-fitness/logger"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds the database connection settings.
// DSN may be "memory" (in-memory SQLite), a postgres DSN, or a SQLite file path.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// AuthConfig holds the token-signing settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret"`
	TokenExpiryMinutes int    `mapstructure:"token_expiry_minutes"`
}

// OpenAIConfig holds settings for the external model provider.
// BaseURL is optional and allows any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	CoachModel     string `mapstructure:"coach_model"`
	EstimatorModel string `mapstructure:"estimator_model"`
}

// Config holds the application's configuration.
type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Auth        AuthConfig     `mapstructure:"auth"`
	OpenAI      OpenAIConfig   `mapstructure:"openai"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// Load reads configuration from an optional config.yaml, a local .env file,
// and environment variables. Environment variables win over file values.
func Load() error {
	// A missing .env is fine; deployments usually inject real env vars.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("auth.token_expiry_minutes", 30)
	viper.SetDefault("openai.coach_model", "o3")
	viper.SetDefault("openai.estimator_model", "gpt-4o")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.Warnf("config.yaml not found, using environment variables and defaults")
		} else {
			return err
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return err
	}

	applyEnvOverrides(&AppConfig)

	if AppConfig.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if AppConfig.OpenAI.APIKey == "" {
		logger.Warnf("OPENAI_API_KEY is not set, plan generation will fail")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_EXPIRY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			cfg.Auth.TokenExpiryMinutes = minutes
		} else {
			logger.Warnf("ignoring invalid TOKEN_EXPIRY_MINUTES value %q", v)
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_COACH_MODEL"); v != "" {
		cfg.OpenAI.CoachModel = v
	}
	if v := os.Getenv("OPENAI_ESTIMATOR_MODEL"); v != "" {
		cfg.OpenAI.EstimatorModel = v
	}
}
