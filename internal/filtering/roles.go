package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/twin-sim/internal/results"
)

type rolesFilter struct {
	disabled bool
	reason   string
	roles    []string
}

// NewRoles creates a filter that keeps only results of the configured roles.
// An empty role list keeps everything.
func NewRoles() Filter {
	return &rolesFilter{}
}

func (f *rolesFilter) Name() string { return "roles" }

func (f *rolesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *rolesFilter) IsEnabled() bool { return !f.disabled }

func (f *rolesFilter) Validate(cfg *Config) error {
	f.roles = nil
	if cfg != nil {
		for _, role := range cfg.Roles {
			if role = strings.TrimSpace(role); role != "" {
				f.roles = append(f.roles, role)
			}
		}
	}
	return nil
}

func (f *rolesFilter) Apply(_ context.Context, deps Deps, r *results.Results) (*results.Results, Step, error) {
	initial := r.Len()
	if len(f.roles) == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	excluded := r.KeepRoles(f.roles)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("keeping only selected roles",
			zap.Strings("roles", f.roles),
			zap.Strings("excluded_results", excluded),
			zap.Int("results_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *rolesFilter) Status() Status {
	details := map[string]string{}
	if len(f.roles) > 0 {
		details["roles"] = strings.Join(f.roles, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
