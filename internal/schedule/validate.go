// Package schedule handles the user-editable rule set that drives
// classification: structural validation of schedule configurations and their
// compilation into ready-to-evaluate matchers.
package schedule

import (
	"fmt"
	"math"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/docsort/docsort/internal/model"
)

// Validate performs structural validation of a schedule configuration.
// It returns the full list of problems found; an empty list means the
// configuration is usable. Validation is all-or-nothing: callers must reject
// the input outright when any error is reported.
func Validate(cfg model.ScheduleConfig) []string {
	var errs []string

	if len(cfg.Categories) == 0 {
		errs = append(errs, "categories: at least one category is required")
	}

	seen := make(map[string]bool, len(cfg.Categories))
	for i, cat := range cfg.Categories {
		where := fmt.Sprintf("categories[%d]", i)
		if cat.ID == "" {
			errs = append(errs, where+": id is required")
		} else if seen[cat.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate id %q", where, cat.ID))
		} else {
			seen[cat.ID] = true
		}
		if cat.Label == "" {
			errs = append(errs, where+": label is required")
		}
		errs = append(errs, validateTerms(where+".keywords", cat.Keywords)...)
		errs = append(errs, validateTerms(where+".small_terms", cat.SmallTerms)...)
	}

	for i, rule := range cfg.FilenameRules {
		where := fmt.Sprintf("filename_rules[%d]", i)
		if rule.Pattern == "" {
			errs = append(errs, where+": pattern is required")
		} else if _, err := regexp.Compile("(?i)" + rule.Pattern); err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid pattern %q: %v", where, rule.Pattern, err))
		}
		if rule.Category == "" {
			errs = append(errs, where+": category is required")
		} else if len(cfg.Categories) > 0 && !cfg.HasCategory(rule.Category) {
			errs = append(errs, fmt.Sprintf("%s: unknown category %q", where, rule.Category))
		}
	}

	return errs
}

func validateTerms(where string, terms []model.WeightedTerm) []string {
	var errs []string
	for i, wt := range terms {
		if wt.Term == "" {
			errs = append(errs, fmt.Sprintf("%s[%d]: term is required", where, i))
		}
		if math.IsNaN(wt.Weight) || math.IsInf(wt.Weight, 0) {
			errs = append(errs, fmt.Sprintf("%s[%d]: weight must be a finite number", where, i))
		} else if wt.Weight < 0 {
			errs = append(errs, fmt.Sprintf("%s[%d]: weight must not be negative", where, i))
		}
	}
	return errs
}

// ParseYAML decodes an editable schedule configuration from YAML and
// validates it. The returned config is only usable when errs is empty.
func ParseYAML(data []byte) (model.ScheduleConfig, []string, error) {
	var cfg model.ScheduleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.ScheduleConfig{}, nil, fmt.Errorf("failed to parse schedule config: %w", err)
	}
	return cfg, Validate(cfg), nil
}

// MarshalYAML encodes a schedule configuration in its editable YAML form.
func MarshalYAML(cfg model.ScheduleConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedule config: %w", err)
	}
	return data, nil
}
