package domain

import "fmt"

// ReportProfile selects a preset that config values are merged over.
type ReportProfile string

const (
	ReportProfileDefault ReportProfile = "default"
	ReportProfileCI      ReportProfile = "ci"
	ReportProfileReview  ReportProfile = "review"
)

// ValidReportProfiles enumerates all recognized profiles.
var ValidReportProfiles = []ReportProfile{
	ReportProfileDefault,
	ReportProfileCI,
	ReportProfileReview,
}

// ReportConfig holds the report settings loaded from .qcresult.yaml.
type ReportConfig struct {
	Profile        ReportProfile         `yaml:"profile"         json:"profile,omitempty"`
	MinLevel       IssueLevel            `yaml:"min_level"       json:"min_level,omitempty"`
	DisabledRules  []string              `yaml:"disabled_rules"  json:"disabled_rules,omitempty"`
	LevelOverrides map[string]IssueLevel `yaml:"level_overrides" json:"level_overrides,omitempty"`
	ShowDisabled   bool                  `yaml:"show_disabled"   json:"show_disabled,omitempty"`
	Strict         bool                  `yaml:"strict"          json:"strict,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing: every level
// is reported and malformed issues are skipped.
func DefaultConfig() ReportConfig {
	return ReportConfig{}
}

// DefaultConfigForProfile returns the preset for a profile.
func DefaultConfigForProfile(p ReportProfile) ReportConfig {
	cfg := ReportConfig{Profile: p}

	switch p {
	case ReportProfileCI:
		cfg.Strict = true
		cfg.MinLevel = LevelWarning

	case ReportProfileReview:
		cfg.ShowDisabled = true
		cfg.MinLevel = LevelInfo
	}

	return cfg
}

// IsRuleDisabled reports whether issues of ruleUID are suppressed.
func (c ReportConfig) IsRuleDisabled(ruleUID string) bool {
	for _, r := range c.DisabledRules {
		if r == ruleUID {
			return true
		}
	}
	return false
}

// Reports reports whether an issue at level passes the min_level filter.
// A zero MinLevel lets everything through.
func (c ReportConfig) Reports(level IssueLevel) bool {
	if c.MinLevel == 0 {
		return true
	}
	return level.AtLeast(c.MinLevel)
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ReportConfig) Validate() error {
	// 1. profile must be known or empty
	if c.Profile != "" {
		valid := false
		for _, p := range ValidReportProfiles {
			if c.Profile == p {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown profile %q (valid: default, ci, review)", c.Profile)
		}
	}

	// 2. min_level must be a level or unset
	if c.MinLevel != 0 && !c.MinLevel.Valid() {
		return fmt.Errorf("min_level %d is not one of 1, 2, 3", int(c.MinLevel))
	}

	// 3. disabled_rules entries must be non-empty
	for i, r := range c.DisabledRules {
		if r == "" {
			return fmt.Errorf("disabled_rules[%d] must not be empty", i)
		}
	}

	// 4. level_overrides needs rule ids and real levels
	for rule, lvl := range c.LevelOverrides {
		if rule == "" {
			return fmt.Errorf("level_overrides has an empty rule uid")
		}
		if !lvl.Valid() {
			return fmt.Errorf("level_overrides[%q] = %d (must be error, warning or information)", rule, int(lvl))
		}
	}

	return nil
}
