package filtering

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/twin-sim/internal/results"
	"github.com/spigell/twin-sim/internal/twin"
)

func sample() *results.Results {
	return results.New([]*twin.Result{
		{CandidateID: "c1", RoleID: "r_sales", Score: 88.5},
		{CandidateID: "c1", RoleID: "r_marketing", Score: 31},
		{CandidateID: "c2", RoleID: "r_sales", Score: 40.25},
		{CandidateID: "c2", RoleID: "r_marketing", Score: 91.1},
		{CandidateID: "c3", RoleID: "r_sales", Score: 55},
	})
}

type failingFilter struct {
	validateErr error
	applyErr    error
	applied     bool
}

func (f *failingFilter) Name() string           { return "failing" }
func (f *failingFilter) Disable(string)         {}
func (f *failingFilter) IsEnabled() bool        { return true }
func (f *failingFilter) Validate(*Config) error { return f.validateErr }
func (f *failingFilter) Apply(_ context.Context, _ Deps, r *results.Results) (*results.Results, Step, error) {
	f.applied = true
	return r, Step{}, f.applyErr
}

func TestRunDefaultFilters(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	cfg := &Config{
		MinimumScore:      50,
		ExcludeCandidates: []string{"c3"},
		Roles:             []string{" r_sales ", "r_marketing", ""},
	}

	got, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Default(), sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Len() != 2 {
		t.Fatalf("expected 2 results left, got %d", got.Len())
	}
	if got.Items[0].CandidateID != "c1" || got.Items[0].RoleID != "r_sales" {
		t.Fatalf("unexpected first result: %+v", got.Items[0])
	}
	if got.Items[1].CandidateID != "c2" || got.Items[1].RoleID != "r_marketing" {
		t.Fatalf("unexpected second result: %+v", got.Items[1])
	}

	steps := observed.FilterMessage("filter step").All()
	if len(steps) != 3 {
		t.Fatalf("expected 3 step entries, got %d", len(steps))
	}

	last := steps[2].ContextMap()
	if last["name"] != "minimum_score" || last["initial"] != int64(4) || last["dropped"] != int64(2) || last["left"] != int64(2) {
		t.Fatalf("unexpected minimum score step: %v", last)
	}
}

func TestRunRolesFilter(t *testing.T) {
	t.Parallel()

	got, err := Run(context.Background(), &Config{Roles: []string{"r_marketing"}}, Deps{}, []Filter{NewRoles()}, sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 results, got %d", got.Len())
	}
	for _, r := range got.Items {
		if r.RoleID != "r_marketing" {
			t.Fatalf("unexpected role %q", r.RoleID)
		}
	}
}

func TestRunWithoutConfigKeepsEverything(t *testing.T) {
	t.Parallel()

	got, err := Run(context.Background(), nil, Deps{}, Default(), sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 5 {
		t.Fatalf("expected all 5 results, got %d", got.Len())
	}
}

func TestRunDisabledFilter(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	steps := Default()
	DisableByName(steps, "minimum_score", "requested")

	got, err := Run(context.Background(), &Config{MinimumScore: 99}, Deps{Logger: zap.New(core)}, steps, sample())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 5 {
		t.Fatalf("expected disabled filter to keep all results, got %d", got.Len())
	}
	if n := observed.FilterMessage("filter disabled").Len(); n != 1 {
		t.Fatalf("expected 1 disabled entry, got %d", n)
	}

	for _, status := range Describe(steps) {
		if status.Name == "minimum_score" && (status.Enabled || status.Reason != "requested") {
			t.Fatalf("unexpected status: %+v", status)
		}
	}
}

func TestDisableByNameEveryFilter(t *testing.T) {
	t.Parallel()

	cfg := &Config{MinimumScore: 99, ExcludeCandidates: []string{"c1", "c2", "c3"}, Roles: []string{"r_none"}}

	for _, name := range []string{"roles", "excluded_candidates", "minimum_score"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			steps := Default()
			DisableByName(steps, name, "skipped by flag")

			var found bool
			for _, status := range Describe(steps) {
				if status.Name != name {
					if !status.Enabled {
						t.Fatalf("expected %s to stay enabled", status.Name)
					}
					continue
				}
				found = true
				if status.Enabled || status.Reason != "skipped by flag" {
					t.Fatalf("unexpected status: %+v", status)
				}
			}
			if !found {
				t.Fatalf("filter %s not described", name)
			}

			// every other filter still drops everything
			got, err := Run(context.Background(), cfg, Deps{}, steps, sample())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Len() != 0 {
				t.Fatalf("expected all results dropped by the remaining filters, got %d", got.Len())
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	invalid := &failingFilter{validateErr: boom}
	if _, err := Run(context.Background(), nil, Deps{}, []Filter{invalid}, sample()); !errors.Is(err, boom) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if invalid.applied {
		t.Fatalf("filter must not be applied after failed validation")
	}

	failing := &failingFilter{applyErr: boom}
	if _, err := Run(context.Background(), nil, Deps{}, []Filter{failing}, sample()); !errors.Is(err, boom) {
		t.Fatalf("expected apply error, got %v", err)
	}

	if _, err := Run(context.Background(), &Config{MinimumScore: 150}, Deps{}, Default(), sample()); err == nil {
		t.Fatalf("expected error for out of range minimum score")
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	steps := Default()
	cfg := &Config{MinimumScore: 42, ExcludeCandidates: []string{"c1", "c2"}, Roles: []string{"r_sales"}}
	for _, step := range steps {
		if err := step.Validate(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	statuses := Describe(append(steps, &failingFilter{}))
	if len(statuses) != 4 {
		t.Fatalf("expected 4 statuses, got %d", len(statuses))
	}

	byName := make(map[string]Status)
	for _, s := range statuses {
		byName[s.Name] = s
	}

	if byName["roles"].Details["roles"] != "r_sales" {
		t.Fatalf("unexpected roles status: %+v", byName["roles"])
	}
	if byName["excluded_candidates"].Details["candidates"] != "c1,c2" {
		t.Fatalf("unexpected candidates status: %+v", byName["excluded_candidates"])
	}
	if byName["minimum_score"].Details["minimum_score"] != "42.00" {
		t.Fatalf("unexpected minimum score status: %+v", byName["minimum_score"])
	}
	if !byName["failing"].Enabled {
		t.Fatalf("expected fallback status for filters without a status provider")
	}
}
