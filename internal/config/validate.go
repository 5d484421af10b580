package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/stuttgart-things/banner/internal/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate checks field ranges and enumerations.
func Validate(cfg *Config) error {
	if cfg == nil {
		return apperrors.InvalidConfiguration("config", fmt.Errorf("configuration is nil"))
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	ves, ok := err.(validator.ValidationErrors)
	if !ok || len(ves) == 0 {
		return apperrors.InvalidConfiguration("config", err)
	}

	fe := ves[0]
	field := fieldName(fe)
	if fe.Param() != "" {
		return apperrors.InvalidConfiguration(field,
			fmt.Errorf("value %v failed %q (%s)", fe.Value(), fe.Tag(), fe.Param()))
	}
	return apperrors.InvalidConfiguration(field, fmt.Errorf("value %v failed %q", fe.Value(), fe.Tag()))
}

// fieldName turns "Config.Log.Level" into "log.level".
func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}
