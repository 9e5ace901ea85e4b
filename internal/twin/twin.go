// Package twin builds candidate twins and scores them against role profiles.
package twin

// DefaultAptitudeScore is used when a candidate has no psychometric or interview score.
const DefaultAptitudeScore = 50.0

// Candidate is a person's profile as supplied by the caller.
type Candidate struct {
	ID                string   `mapstructure:"id" json:"id,omitempty"`
	Name              string   `mapstructure:"name" json:"name,omitempty"`
	Skills            []string `mapstructure:"skills" json:"skills,omitempty"`
	ResumeText        string   `mapstructure:"resume_text" json:"resume_text,omitempty"`
	PsychometricScore *float64 `mapstructure:"psychometric_score" json:"psychometric_score,omitempty"`
	InterviewScore    *float64 `mapstructure:"interview_score" json:"interview_score,omitempty"`
}

// SkillGraph maps every skill to the other skills of the same candidate.
type SkillGraph map[string][]string

// Degree returns the neighbor count of a skill, 0 when the skill is absent.
func (g SkillGraph) Degree(skill string) int {
	return len(g[skill])
}

// Twin is the derived view of a candidate used for scoring.
type Twin struct {
	ID                string     `json:"id,omitempty"`
	Name              string     `json:"name,omitempty"`
	Skills            []string   `json:"skills"`
	SkillGraph        SkillGraph `json:"skill_graph"`
	PsychometricScore float64    `json:"psychometric_score"`
	InterviewScore    float64    `json:"interview_score"`
}

// BuildTwin derives a twin from the candidate.
func (e *Extractor) BuildTwin(c *Candidate) *Twin {
	skills := e.Extract(c)

	t := &Twin{
		Skills:            skills,
		SkillGraph:        buildSkillGraph(skills),
		PsychometricScore: DefaultAptitudeScore,
		InterviewScore:    DefaultAptitudeScore,
	}

	if c == nil {
		return t
	}

	t.ID = c.ID
	t.Name = c.Name
	if c.PsychometricScore != nil {
		t.PsychometricScore = *c.PsychometricScore
	}
	if c.InterviewScore != nil {
		t.InterviewScore = *c.InterviewScore
	}

	return t
}

// BuildTwin derives a twin using the default catalog.
func BuildTwin(c *Candidate) *Twin {
	return defaultExtractor.BuildTwin(c)
}

// buildSkillGraph connects each skill to all other skills in the list, keeping list order.
func buildSkillGraph(skills []string) SkillGraph {
	graph := make(SkillGraph, len(skills))
	for _, s := range skills {
		neighbors := make([]string, 0, len(skills))
		for _, other := range skills {
			if other != s {
				neighbors = append(neighbors, other)
			}
		}
		graph[s] = neighbors
	}
	return graph
}
