package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for both the API service and the
// session gateway. Every field can be overridden by an environment
// variable of the same name.
type Config struct {
	APIPort       string
	WebPort       string
	DBDriver      string
	DatabaseDSN   string
	RabbitMQURL   string // empty disables event publishing
	SessionSecret string
	SessionTTL    time.Duration
	APIBaseURL    string
}

// Load reads configuration from environment variables with sensible
// development defaults.
func Load() *Config {
	viper.SetDefault("API_PORT", ":8000")
	viper.SetDefault("WEB_PORT", ":5000")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "minishop.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SESSION_SECRET", "dev-session-secret")
	viper.SetDefault("SESSION_TTL", time.Hour)
	viper.SetDefault("API_BASE_URL", "http://localhost:8000")
	viper.AutomaticEnv()

	return &Config{
		APIPort:       viper.GetString("API_PORT"),
		WebPort:       viper.GetString("WEB_PORT"),
		DBDriver:      viper.GetString("DB_DRIVER"),
		DatabaseDSN:   viper.GetString("DATABASE_DSN"),
		RabbitMQURL:   viper.GetString("RABBITMQ_URL"),
		SessionSecret: viper.GetString("SESSION_SECRET"),
		SessionTTL:    viper.GetDuration("SESSION_TTL"),
		APIBaseURL:    viper.GetString("API_BASE_URL"),
	}
}
