package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type LibraryConfig struct {
	Backend    string `json:"backend" validate:"required,backend"`
	Path       string `json:"path" validate:"required_unless=Backend memory"`
	MaxHistory int    `json:"max_history" validate:"min=1"`
}

func init() {
	if err := validate.RegisterValidation("backend", validateBackend); err != nil {
		panic(fmt.Sprintf("failed to register backend validator: %v", err))
	}
}

func validateBackend(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}
