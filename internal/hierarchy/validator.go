package hierarchy

import (
	"context"

	"go.uber.org/zap"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
)

// Validation reports whether a code exists. Level is nil when the code is
// malformed; Entity is nil whenever Valid is false.
type Validation struct {
	Code   string         `json:"code"`
	Valid  bool           `json:"valid"`
	Level  *geocode.Level `json:"type"`
	Entity any            `json:"data"`
}

// Validator checks codes with a single fetch.
type Validator struct {
	getter   EntityGetter
	classify Classifier
	logger   *zap.Logger
}

// NewValidator creates a validator fetching through getter.
func NewValidator(getter EntityGetter, opts ...Option) *Validator {
	o := buildOptions(opts)
	return &Validator{getter: getter, classify: o.classify, logger: o.logger}
}

// Validate never returns an error: every fetch failure, including transient
// ones, reads as invalid.
func (v *Validator) Validate(ctx context.Context, code string) Validation {
	level, err := v.classify(code)
	if err != nil {
		return Validation{Code: code}
	}
	entity, err := v.getter.Entity(ctx, level, code)
	if err != nil {
		v.logger.Debug("code validation failed",
			zap.String("code", code),
			zap.String("level", level.String()),
			zap.Error(err),
		)
		return Validation{Code: code, Level: &level}
	}
	return Validation{Code: code, Valid: true, Level: &level, Entity: entity}
}
