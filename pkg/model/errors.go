package model

import (
	"errors"
	"fmt"
)

// Defining possible configuration errors
var (
	ErrNoPredicates      = errors.New("at least one deficiency is required")
	ErrTooManyPredicates = fmt.Errorf("at most %d deficiencies are supported", MaxPredicates)
	ErrEmptyName         = errors.New("deficiency name is empty")
	ErrDuplicateName     = errors.New("deficiency name is not unique")
	ErrInvalidName       = errors.New("deficiency name must not contain '/'")
	ErrUnknownGene       = errors.New("gene is not present in the gene loss matrix")
	ErrUnknownCombinator = errors.New("combinator must be ALL or ANY")
	ErrUnknownCancerType = errors.New("cancer type is not present in the gene loss matrix")
	ErrDuplicateSample   = errors.New("sample appears twice in the gene loss matrix")
	ErrMatrixShape       = errors.New("row width does not match the gene list")
)

// ConfigError reports an invalid cohort configuration. It is raised before
// any evaluation takes place.
type ConfigError struct {
	Field string // e.g. predicates[1].genes
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(field, value string, err error) error {
	return &ConfigError{Field: field, Value: value, Err: err}
}

// IsConfigError reports whether err originates from configuration validation.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
