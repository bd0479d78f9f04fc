package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema checks the config for required fields, after
// making sure the embedded schema itself is well-formed
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if cfg.Telegram.APIURL == "" {
		return fmt.Errorf("telegram.api_url is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Retention.CheckInterval == 0 {
		return fmt.Errorf("retention.check_interval is required")
	}

	if cfg.Server.Enabled {
		if cfg.Server.Listen == "" {
			return fmt.Errorf("server.listen is required when the status server is enabled")
		}
		if cfg.Server.Timeout == 0 {
			return fmt.Errorf("server.timeout is required when the status server is enabled")
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
