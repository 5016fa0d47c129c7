package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPath string // commands file; stdin when empty
	LoadPath   string // workbook imported before the first command

	HistoryCapacity int    `validate:"gte=1,lte=10000"`
	DisplayMode     string `validate:"oneof=values formulas"`
	RecoveryDir     string // autosave directory; disabled when empty

	LogFormat       string `validate:"oneof=text json"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	HealthcheckPort int    `validate:"gte=0,lte=65535"`
}

var validate = validator.New()

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, formatValidationError(err)
	}
	return &cfg, nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be one of %s", e.Field(), e.Value(), e.Param())
	case "gte":
		return fmt.Sprintf("invalid %s %v: must be at least %s", e.Field(), e.Value(), e.Param())
	case "lte":
		return fmt.Sprintf("invalid %s %v: must be at most %s", e.Field(), e.Value(), e.Param())
	default:
		return fmt.Sprintf("invalid %s", e.Field())
	}
}
