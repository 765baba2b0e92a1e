package hierarchy

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
)

// EntityGetter fetches one entity by level and code. *psgc.Client
// implements it.
type EntityGetter interface {
	Entity(ctx context.Context, level geocode.Level, code string) (any, error)
}

// Classifier maps a code to its level.
type Classifier func(code string) (geocode.Level, error)

// Level is one entry of an ancestry list.
type Level struct {
	Type geocode.Level `json:"type"`
	Data any           `json:"data"`
}

// Hierarchy is the ancestry of a code, ordered root to leaf.
type Hierarchy struct {
	Code       string        `json:"code"`
	EntityType geocode.Level `json:"entityType"`
	Levels     []Level       `json:"levels"`
	// Truncated is set when a TruncateAndReturn step failed.
	Truncated bool `json:"truncated,omitempty"`
}

// Resolver walks the plan for a code's classification.
type Resolver struct {
	getter   EntityGetter
	classify Classifier
	logger   *zap.Logger
}

// Option configures a Resolver or Validator.
type Option func(*options)

type options struct {
	classify Classifier
	logger   *zap.Logger
}

// WithClassifier replaces geocode.Classify.
func WithClassifier(classify Classifier) Option {
	return func(o *options) {
		if classify != nil {
			o.classify = classify
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logging.OrNop(logger)
	}
}

func buildOptions(opts []Option) options {
	o := options{classify: geocode.Classify, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewResolver creates a resolver fetching through getter.
func NewResolver(getter EntityGetter, opts ...Option) *Resolver {
	o := buildOptions(opts)
	return &Resolver{getter: getter, classify: o.classify, logger: o.logger}
}

// Resolve returns the ancestry of code. Malformed codes fail before any
// fetch.
func (r *Resolver) Resolve(ctx context.Context, code string) (Hierarchy, error) {
	level, err := r.classify(code)
	if err != nil {
		return Hierarchy{}, err
	}
	plan, ok := Plans[level]
	if !ok {
		return Hierarchy{}, fmt.Errorf("no hierarchy plan for %s", level)
	}

	fetched, truncated, err := r.walk(ctx, code, plan)
	if err != nil {
		return Hierarchy{}, err
	}
	slices.Reverse(fetched)
	return Hierarchy{
		Code:       code,
		EntityType: level,
		Levels:     fetched,
		Truncated:  truncated,
	}, nil
}

func (r *Resolver) walk(ctx context.Context, code string, plan Plan) ([]Level, bool, error) {
	fetched := make([]Level, 0, len(plan))
	for _, step := range plan {
		stepCode, err := step.code(code, fetched)
		if err == nil {
			var entity any
			entity, err = r.getter.Entity(ctx, step.Level, stepCode)
			if err == nil {
				fetched = append(fetched, Level{Type: step.Level, Data: entity})
				continue
			}
		}

		switch step.Policy {
		case TruncateAndReturn:
			r.logger.Debug("hierarchy truncated",
				zap.String("code", code),
				zap.String("level", step.Level.String()),
				zap.Error(err),
			)
			return fetched, true, nil
		default:
			return nil, false, fmt.Errorf("get %s %s: %w", step.Level, stepCode, err)
		}
	}
	return fetched, false, nil
}
