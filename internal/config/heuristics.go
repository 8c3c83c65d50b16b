package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain/roles"
	"github.com/honeycarbs/jobmarket-tracker/internal/domain/skills"
)

// Heuristics bundles the data-driven classification tables. Built once at
// startup and shared read-only.
type Heuristics struct {
	Lexicon     skills.Lexicon
	Normalizer  roles.Normalizer
	Classifier  roles.Classifier
	Suggestions []roles.Suggestion
}

// heuristicsFile is the YAML layout of HEURISTICS_FILE. Omitted sections keep defaults.
type heuristicsFile struct {
	Skills          []string           `yaml:"skills"`
	RoleRules       []roles.Rule       `yaml:"role_rules"`
	ExperienceRules []roles.Rule       `yaml:"experience_rules"`
	Suggestions     []roles.Suggestion `yaml:"suggestions"`
}

// DefaultHeuristics returns the built-in tables
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Lexicon:     skills.Default(),
		Normalizer:  roles.DefaultNormalizer(),
		Classifier:  roles.DefaultClassifier(),
		Suggestions: roles.DefaultSuggestions,
	}
}

// LoadHeuristics reads overrides from path; an empty path yields the defaults
func LoadHeuristics(path string) (Heuristics, error) {
	h := DefaultHeuristics()
	if path == "" {
		return h, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("heuristics: read %s: %w", path, err)
	}

	var file heuristicsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return h, fmt.Errorf("heuristics: parse %s: %w", path, err)
	}

	if len(file.Skills) > 0 {
		lx, err := skills.NewLexicon(file.Skills)
		if err != nil {
			return h, fmt.Errorf("heuristics: skills: %w", err)
		}
		h.Lexicon = lx
	}
	if len(file.RoleRules) > 0 {
		if err := validateRules("role_rules", file.RoleRules); err != nil {
			return h, err
		}
		h.Normalizer = roles.NewNormalizer(file.RoleRules)
	}
	if len(file.ExperienceRules) > 0 {
		if err := validateRules("experience_rules", file.ExperienceRules); err != nil {
			return h, err
		}
		h.Classifier = roles.NewClassifier(file.ExperienceRules)
	}
	if len(file.Suggestions) > 0 {
		h.Suggestions = file.Suggestions
	}

	return h, nil
}

func validateRules(section string, rules []roles.Rule) error {
	for i, r := range rules {
		if r.Label == "" {
			return fmt.Errorf("heuristics: %s[%d]: label is required", section, i)
		}
		if len(r.Any) == 0 {
			return fmt.Errorf("heuristics: %s[%d] (%s): at least one keyword is required", section, i, r.Label)
		}
	}
	return nil
}
