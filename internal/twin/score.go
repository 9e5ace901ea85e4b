package twin

import "math"

const (
	DefaultSkillsWeight    = 0.6
	DefaultPsychWeight     = 0.3
	DefaultInterviewWeight = 0.08
	DefaultTeamWeight      = 0.02
)

// Weights configures how much each signal contributes to the score.
// A nil field falls back to its default; the weights need not sum to 1.
type Weights struct {
	Skills    *float64 `mapstructure:"skills" json:"skills,omitempty"`
	Psych     *float64 `mapstructure:"psych" json:"psych,omitempty"`
	Interview *float64 `mapstructure:"interview" json:"interview,omitempty"`
	Team      *float64 `mapstructure:"team" json:"team,omitempty"`
}

// Resolved returns the four weights with defaults applied.
func (w *Weights) Resolved() (skills, psych, interview, team float64) {
	if w == nil {
		return DefaultSkillsWeight, DefaultPsychWeight, DefaultInterviewWeight, DefaultTeamWeight
	}
	return valueOr(w.Skills, DefaultSkillsWeight),
		valueOr(w.Psych, DefaultPsychWeight),
		valueOr(w.Interview, DefaultInterviewWeight),
		valueOr(w.Team, DefaultTeamWeight)
}

// RoleProfile describes a role: the skills it requires and how signals are weighted.
type RoleProfile struct {
	ID             string   `mapstructure:"id" json:"id,omitempty"`
	Name           string   `mapstructure:"name" json:"name,omitempty"`
	RequiredSkills []string `mapstructure:"required_skills" json:"required_skills,omitempty"`
	Weights        *Weights `mapstructure:"weights" json:"weights,omitempty"`
}

// Assessment holds the signals behind a score. Signals are in [0,1], Score in [0,100].
type Assessment struct {
	SkillMatch float64 `json:"skill_match"`
	Psych      float64 `json:"psych"`
	Interview  float64 `json:"interview"`
	TeamFit    float64 `json:"team_fit"`
	Score      float64 `json:"score"`
}

// Evaluate scores the twin against the role and returns the intermediate signals.
func Evaluate(t *Twin, role *RoleProfile) Assessment {
	if t == nil {
		t = &Twin{PsychometricScore: DefaultAptitudeScore, InterviewScore: DefaultAptitudeScore}
	}

	var required []string
	var weights *Weights
	if role != nil {
		required = make([]string, 0, len(role.RequiredSkills))
		for _, s := range role.RequiredSkills {
			required = append(required, NormalizeSkill(s))
		}
		weights = role.Weights
	}

	have := make(map[string]struct{}, len(t.Skills))
	for _, s := range t.Skills {
		have[NormalizeSkill(s)] = struct{}{}
	}

	a := Assessment{
		Psych:     clamp01(t.PsychometricScore / 100),
		Interview: clamp01(t.InterviewScore / 100),
	}

	if len(required) > 0 {
		matched := 0
		degrees := 0
		for _, r := range required {
			if _, ok := have[r]; ok {
				matched++
			}
			degrees += t.SkillGraph.Degree(r)
		}
		a.SkillMatch = float64(matched) / float64(len(required))

		if len(t.Skills) > 0 {
			a.TeamFit = float64(degrees) / float64(len(required)*max(1, len(t.Skills)))
		}
	}

	ws, wp, wi, wt := weights.Resolved()
	sum := ws*a.SkillMatch + wp*a.Psych + wi*a.Interview + wt*a.TeamFit
	a.Score = math.RoundToEven(100*clamp01(sum)*100) / 100

	return a
}

// ScoreForRole returns the twin's 0..100 fit score for the role, rounded to 2 decimals.
func ScoreForRole(t *Twin, role *RoleProfile) float64 {
	return Evaluate(t, role).Score
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
