package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/twin-sim/internal/results"
)

type excludedCandidatesFilter struct {
	disabled   bool
	reason     string
	candidates []string
}

// NewExcludedCandidates creates a filter that removes results of the configured candidates.
func NewExcludedCandidates() Filter {
	return &excludedCandidatesFilter{}
}

func (f *excludedCandidatesFilter) Name() string { return "excluded_candidates" }

func (f *excludedCandidatesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *excludedCandidatesFilter) IsEnabled() bool { return !f.disabled }

func (f *excludedCandidatesFilter) Validate(cfg *Config) error {
	f.candidates = nil
	if cfg != nil {
		f.candidates = append(f.candidates, cfg.ExcludeCandidates...)
	}
	return nil
}

func (f *excludedCandidatesFilter) Apply(_ context.Context, deps Deps, r *results.Results) (*results.Results, Step, error) {
	initial := r.Len()
	if len(f.candidates) == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	excluded := r.Exclude(results.CandidateIDField, f.candidates)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding results by candidates",
			zap.Strings("excluded_candidates", f.candidates),
			zap.Strings("excluded_results", excluded),
			zap.Int("results_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *excludedCandidatesFilter) Status() Status {
	details := map[string]string{}
	if len(f.candidates) > 0 {
		details["candidates"] = strings.Join(f.candidates, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
