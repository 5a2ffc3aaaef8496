package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is complete for the
// current environment. Missing provider credentials are a startup failure,
// not a first-request failure.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"server port": cfg.ServerPort,
		"db host":     cfg.DBHost,
		"db port":     cfg.DBPort,
		"db user":     cfg.DBUser,
		"db name":     cfg.DBName,
		"jwt secret":  cfg.JWTSecret,
	}
	for field, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required configuration %s is not set", field))
		}
	}

	if IsProduction() || IsCI() {
		if cfg.DBPassword == "" {
			errors = append(errors, "db password is required")
		}
		if cfg.OpenRouter.APIKey == "" {
			errors = append(errors, "openrouter api key is required")
		}
	}

	if cfg.OpenRouter.BaseURL == "" {
		errors = append(errors, "openrouter base url is not set")
	}
	if cfg.OpenRouter.Model == "" {
		errors = append(errors, "openrouter model is not set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
