// Package dataset loads candidates and role profiles from JSON files.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/twin-sim/internal/twin"
)

// Dataset is the content of a sample data file.
type Dataset struct {
	Candidates []*twin.Candidate   `mapstructure:"candidates"`
	Roles      []*twin.RoleProfile `mapstructure:"roles"`
}

// Load reads a dataset file. Numeric fields given as strings are coerced.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %q: %w", path, err)
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}

	return ds, nil
}

// Parse decodes a dataset from raw JSON.
func Parse(data []byte) (*Dataset, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	ds := &Dataset{}
	if err := decode(raw, ds); err != nil {
		return nil, err
	}

	return ds, nil
}

// decode converts a parsed JSON document into the target.
func decode(input any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

// DemoRoles returns the role profiles used when none are configured.
func DemoRoles() []*twin.RoleProfile {
	weights := func() *twin.Weights {
		skills, psych, interview, team := 0.6, 0.25, 0.12, 0.03
		return &twin.Weights{Skills: &skills, Psych: &psych, Interview: &interview, Team: &team}
	}

	return []*twin.RoleProfile{
		{
			ID:             "r_sales",
			Name:           "Sales (B2B SaaS)",
			RequiredSkills: []string{"communication", "negotiation", "crm", "sales"},
			Weights:        weights(),
		},
		{
			ID:             "r_marketing",
			Name:           "Marketing (Digital)",
			RequiredSkills: []string{"seo", "content creation", "analytics", "social media"},
			Weights:        weights(),
		},
	}
}
