package config

import (
	"strings"

	"github.com/rendetalje/friday/internal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

// EnvVars are secrets loaded from ENV, never from the config file.
var EnvVars = map[string]string{
	"llm.anthropic_api_key": "FRIDAY_ANTHROPIC_API_KEY",
	"llm.openai_api_key":    "FRIDAY_OPENAI_API_KEY",
	"billy.api_key":         "FRIDAY_BILLY_API_KEY",
	"auth.secret":           "FRIDAY_AUTH_SECRET",
	"store.postgres.dsn":    "FRIDAY_STORE_POSTGRES_DSN",
}

var defaults = map[string]interface{}{
	"llm.service":                          "openai",
	"llm.model":                            "gpt-4o-mini",
	"assistant.require_approval":           true,
	"assistant.confidence_threshold":       0.7,
	"assistant.hourly_rate":                349.0,
	"assistant.invoice_payment_terms_days": 1,
	"assistant.default_booking_hours":      3,
	"store.type":                           "postgres",
	"billy.base_url":                       "https://api.billysbilling.com/v2",
	"google.impersonated_user":             "info@rendetalje.dk",
	"google.calendar_id":                   "primary",
	"google.token_url":                     "https://oauth2.googleapis.com/token",
	"server.port":                          8000,
	"log.level":                            "info",
	"auth.required":                        false,
}

// LoadConfig loads the config file and ENV variables into a Config struct
func LoadConfig(configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("FRIDAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Warn("no config file found, using defaults and ENV")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	for key, envVar := range EnvVars {
		if err := viper.BindEnv(key, envVar); err != nil {
			log.Fatalf("Error binding environment variable: %s", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
