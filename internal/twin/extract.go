package twin

import (
	"regexp"
	"sort"
	"strings"
)

// Catalog is a fixed list of known skill phrases matched against resume text.
type Catalog []string

var defaultCatalog = Catalog{
	"communication", "negotiation", "crm", "data analysis", "leadership",
	"seo", "content creation", "social media", "analytics", "python",
	"machine learning", "sql", "javascript", "project management", "sales",
	"marketing", "problem solving",
}

// DefaultCatalog returns a copy of the built-in skill catalog.
func DefaultCatalog() Catalog {
	return append(Catalog(nil), defaultCatalog...)
}

var (
	skillsLineRe  = regexp.MustCompile(`(?i)skills?:\s*(.+)`)
	skillsSplitRe = regexp.MustCompile(`[,;]`)
)

// NormalizeSkill trims and lower-cases a skill label.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Extractor resolves candidate skills against an immutable catalog.
type Extractor struct {
	catalog Catalog
}

// NewExtractor creates an extractor over a private copy of the catalog.
// A nil catalog falls back to the default one; an empty non-nil catalog disables phrase matching.
func NewExtractor(catalog Catalog) *Extractor {
	if catalog == nil {
		return &Extractor{catalog: DefaultCatalog()}
	}

	normalized := make(Catalog, 0, len(catalog))
	for _, phrase := range catalog {
		if p := NormalizeSkill(phrase); p != "" {
			normalized = append(normalized, p)
		}
	}

	return &Extractor{catalog: normalized}
}

// Catalog returns a copy of the phrases the extractor matches.
func (e *Extractor) Catalog() Catalog {
	return append(Catalog(nil), e.catalog...)
}

// Extract returns the candidate's skills.
//
// An explicit skill list is only normalized: order and duplicates are kept.
// Skills found in the resume text are deduplicated and sorted.
func (e *Extractor) Extract(c *Candidate) []string {
	if c == nil {
		return []string{}
	}

	if len(c.Skills) > 0 {
		skills := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			skills = append(skills, NormalizeSkill(s))
		}
		return skills
	}

	return e.FromText(c.ResumeText)
}

// FromText scans free text for catalog phrases and a "Skills:" line.
func (e *Extractor) FromText(text string) []string {
	found := make(map[string]struct{})

	lower := strings.ToLower(text)
	for _, phrase := range e.catalog {
		if strings.Contains(lower, phrase) {
			found[phrase] = struct{}{}
		}
	}

	// The "Skills:" line is searched in the candidate's own resume text, not in a fixed sample.
	if m := skillsLineRe.FindStringSubmatch(text); m != nil {
		for _, part := range skillsSplitRe.Split(m[1], -1) {
			if p := NormalizeSkill(part); p != "" {
				found[p] = struct{}{}
			}
		}
	}

	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)

	return skills
}

var defaultExtractor = NewExtractor(nil)

// ExtractSkills resolves skills with the default catalog.
func ExtractSkills(c *Candidate) []string {
	return defaultExtractor.Extract(c)
}
