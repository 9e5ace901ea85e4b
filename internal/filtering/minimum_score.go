package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/twin-sim/internal/results"
)

type minimumScoreFilter struct {
	disabled bool
	reason   string
	min      float64
}

// NewMinimumScore creates a filter that drops results scoring below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.min = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinimumScore < 0 || cfg.MinimumScore > 100 {
		return fmt.Errorf("minimum score must be within [0,100], got %v", cfg.MinimumScore)
	}
	f.min = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, r *results.Results) (*results.Results, Step, error) {
	initial := r.Len()
	if f.min <= 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	dropped := r.BelowScore(f.min)
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding results below minimum score",
			zap.Float64("minimum_score", f.min),
			zap.Strings("excluded_results", dropped),
			zap.Int("results_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": fmt.Sprintf("%.2f", f.min)},
	}
}
