package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables (prefix APPFORGE_, nested keys joined with _) take
// precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("APPFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credential keys have no defaults, so bind them explicitly; viper
	// only surfaces automatic env values through Unmarshal for keys it
	// already knows about.
	for _, key := range []string{
		"auth.secret",
		"auth.secret_hash",
		"database.url",
		"llm.gemini_api_key",
		"github.token",
		"github.owner",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars alone may be sufficient.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults establishes the defaults for all optional settings.
// The pipeline ceilings mirror the evaluation protocol: 9 minutes total with
// 8 minutes for the generate/publish stages, reserving a buffer for the
// notification stage.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.branch", "main")

	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.timeout_seconds", 30)

	v.SetDefault("pipeline.total_ceiling_seconds", 9*60)
	v.SetDefault("pipeline.stage_ceiling_seconds", 8*60)
	v.SetDefault("pipeline.notify_attempts", 3)
	v.SetDefault("pipeline.notify_delay_seconds", 1)
	v.SetDefault("pipeline.notify_timeout_seconds", 10)
}
