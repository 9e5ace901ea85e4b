package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/twin-sim/internal/twin"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	ds, err := Load(filepath.Join("testdata", "sample_data.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ds.Candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(ds.Candidates))
	}

	alice := ds.Candidates[0]
	if alice.ID != "c1" || alice.Name != "Alice Johnson" {
		t.Fatalf("unexpected candidate: %+v", alice)
	}
	if !reflect.DeepEqual(alice.Skills, []string{"Communication", "Negotiation", "CRM", "Sales"}) {
		t.Fatalf("unexpected skills: %v", alice.Skills)
	}
	if alice.PsychometricScore == nil || *alice.PsychometricScore != 82 {
		t.Fatalf("unexpected psychometric score: %v", alice.PsychometricScore)
	}
	if alice.InterviewScore == nil || *alice.InterviewScore != 76.5 {
		t.Fatalf("expected interview score coerced from string, got %v", alice.InterviewScore)
	}

	ravi := ds.Candidates[1]
	if !strings.HasPrefix(ravi.ResumeText, "Digital marketer") {
		t.Fatalf("unexpected resume text: %q", ravi.ResumeText)
	}
	if ravi.InterviewScore != nil {
		t.Fatalf("expected missing interview score to stay nil")
	}

	maria := ds.Candidates[2]
	if maria.PsychometricScore != nil || maria.InterviewScore != nil {
		t.Fatalf("expected absent scores to stay nil, got %+v", maria)
	}

	if len(ds.Roles) != 1 {
		t.Fatalf("expected 1 role, got %d", len(ds.Roles))
	}

	role := ds.Roles[0]
	if role.Weights == nil || role.Weights.Skills == nil || *role.Weights.Skills != 0.5 {
		t.Fatalf("unexpected skills weight: %+v", role.Weights)
	}
	if role.Weights.Psych == nil || *role.Weights.Psych != 0.4 {
		t.Fatalf("expected psych weight coerced from string, got %+v", role.Weights.Psych)
	}
	if role.Weights.Interview != nil || role.Weights.Team != nil {
		t.Fatalf("expected missing weights to stay nil")
	}

	s, p, i, tm := role.Weights.Resolved()
	if s != 0.5 || p != 0.4 || i != twin.DefaultInterviewWeight || tm != twin.DefaultTeamWeight {
		t.Fatalf("unexpected resolved weights: %v %v %v %v", s, p, i, tm)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	broken := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(broken, []byte(`{"candidates": [`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(broken); err == nil {
		t.Fatalf("expected error for malformed json")
	}

	if _, err := Parse([]byte(`{"candidates": [{"psychometric_score": "high"}]}`)); err == nil {
		t.Fatalf("expected error for non-numeric score")
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	ds, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Candidates) != 0 || len(ds.Roles) != 0 {
		t.Fatalf("expected empty dataset, got %+v", ds)
	}
}

func TestDemoRoles(t *testing.T) {
	t.Parallel()

	roles := DemoRoles()
	if len(roles) != 2 || roles[0].ID != "r_sales" || roles[1].ID != "r_marketing" {
		t.Fatalf("unexpected demo roles: %+v", roles)
	}

	*roles[0].Weights.Skills = 0
	if *roles[1].Weights.Skills != 0.6 {
		t.Fatalf("demo roles must not share weights")
	}
}
