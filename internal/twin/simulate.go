package twin

import (
	"go.uber.org/zap"

	"github.com/spigell/twin-sim/internal/logger"
	"github.com/spigell/twin-sim/internal/utils"
)

const defaultMaxLogLength = 120

// Result is the score of one candidate for one role.
type Result struct {
	CandidateID   string  `mapstructure:"candidate_id" json:"candidate_id"`
	CandidateName string  `mapstructure:"candidate_name" json:"candidate_name"`
	RoleID        string  `mapstructure:"role_id" json:"role_id"`
	RoleName      string  `mapstructure:"role_name" json:"role_name"`
	Score         float64 `mapstructure:"score" json:"score"`
}

// Simulator scores candidates against roles.
type Simulator struct {
	extractor *Extractor
	logger    *zap.Logger
	maxLogLen int
}

// NewSimulator creates a simulator. A nil extractor uses the default catalog and
// a nil logger disables logging.
func NewSimulator(extractor *Extractor, log *zap.Logger, maxLogLength int) *Simulator {
	if extractor == nil {
		extractor = defaultExtractor
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Simulator{
		extractor: extractor,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// SimulateAll builds one twin per candidate and scores it against every role.
// Results are row-major: all roles of the first candidate come first.
func (s *Simulator) SimulateAll(candidates []*Candidate, roles []*RoleProfile) []*Result {
	results := make([]*Result, len(candidates)*len(roles))

	for i, c := range candidates {
		t := s.extractor.BuildTwin(c)

		log := logger.WithFields(s.logger, logger.CandidateFields(t.ID, t.Name)...)
		if c != nil && len(c.Skills) == 0 {
			log.Debug("skills extracted from resume text",
				zap.String("resume_preview", utils.TruncateForLog(c.ResumeText, s.maxLogLen)),
				zap.Strings("skills", t.Skills),
			)
		} else {
			log.Debug("twin built", zap.Strings("skills", t.Skills))
		}

		for j, role := range roles {
			a := Evaluate(t, role)

			r := &Result{
				CandidateID:   t.ID,
				CandidateName: t.Name,
				Score:         a.Score,
			}
			if role != nil {
				r.RoleID = role.ID
				r.RoleName = role.Name
			}

			log.Debug("role scored",
				append(logger.RoleFields(r.RoleID, r.RoleName),
					zap.Float64("skill_match", a.SkillMatch),
					zap.Float64("psych", a.Psych),
					zap.Float64("interview", a.Interview),
					zap.Float64("team_fit", a.TeamFit),
					zap.Float64("score", a.Score),
				)...,
			)

			results[i*len(roles)+j] = r
		}
	}

	return results
}

var defaultSimulator = NewSimulator(nil, nil, 0)

// SimulateAll scores every candidate against every role with the default catalog.
func SimulateAll(candidates []*Candidate, roles []*RoleProfile) []*Result {
	return defaultSimulator.SimulateAll(candidates, roles)
}
