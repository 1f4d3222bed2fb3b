package schedule

import (
	"fmt"
	"regexp"

	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/normalize"
)

// compiledRule pairs a pre-compiled case-insensitive matcher with its target
// category.
type compiledRule struct {
	re       *regexp.Regexp
	category string
}

// Compiled is a schedule configuration ready for fast repeated evaluation.
// The category list passes through unchanged; filename patterns are compiled
// once up front so matching never fails at evaluation time.
type Compiled struct {
	Categories []model.CategoryDefinition
	rules      []compiledRule
}

// Compile converts a validated configuration into its compiled form. It is a
// pure transform with no I/O. Callers must validate first; an invalid pattern
// here is a programming error and is reported as such.
func Compile(cfg model.ScheduleConfig) (*Compiled, error) {
	compiled := &Compiled{
		Categories: cfg.Categories,
		rules:      make([]compiledRule, 0, len(cfg.FilenameRules)),
	}

	for i, rule := range cfg.FilenameRules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("filename rule %d: pattern %q failed to compile: %w", i, rule.Pattern, err)
		}
		compiled.rules = append(compiled.rules, compiledRule{re: re, category: rule.Category})
	}

	return compiled, nil
}

// MatchFilename tests the normalized filename against each rule in
// declaration order and returns the first matching rule's category.
func (c *Compiled) MatchFilename(filename string) (string, bool) {
	name := normalize.Normalize(filename)
	for _, rule := range c.rules {
		if rule.re.MatchString(name) {
			return rule.category, true
		}
	}
	return "", false
}

// RuleCount returns the number of compiled filename rules.
func (c *Compiled) RuleCount() int {
	return len(c.rules)
}
