package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Config struct {
	Server   Server        `json:"server" validate:"required"`
	Gopher   Gopher        `json:"gopher" validate:"required"`
	Workers  Workers       `json:"workers" validate:"required"`
	Library  LibraryConfig `json:"library" validate:"required"`
	LogLevel string        `json:"log_level" validate:"required,loglevel"`
}

type Server struct {
	ListenAddr    string `json:"listen_addr" validate:"required,hostname_port"`
	AllowedOrigin string `json:"allowed_origin" validate:"required"`
}

type Gopher struct {
	TimeoutSeconds int `json:"timeout_seconds" validate:"min=1,max=300"`
	DefaultPort    int `json:"default_port" validate:"min=1,max=65535"`
}

// Timeout returns the per-fetch socket timeout.
func (g Gopher) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

type Workers struct {
	Count     int `json:"count" validate:"min=1,max=256"`
	QueueSize int `json:"queue_size" validate:"min=1"`
}

// NewConfig creates a new Config instance from the environment.
// A missing config file is not an error; defaults apply.
func NewConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		host, _, err := net.SplitHostPort(cfg.Server.ListenAddr)
		if err != nil {
			host = ""
		}
		cfg.Server.ListenAddr = net.JoinHostPort(host, port)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func init() {
	if err := validate.RegisterValidation("loglevel", validateLogLevel); err != nil {
		panic(fmt.Sprintf("failed to register loglevel validator: %v", err))
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// formatValidationErrors formats validation errors into a user-friendly error message
func formatValidationErrors(errors validator.ValidationErrors) error {
	var errMsgs []string
	for _, err := range errors {
		errMsgs = append(errMsgs, fmt.Sprintf(
			"field '%s' failed validation: %s",
			err.Field(),
			err.Tag(),
		))
	}
	return fmt.Errorf("validation errors: %v", errMsgs)
}
