package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/qcresult/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".qcresult.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .qcresult.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .qcresult.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ReportConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ReportConfig{}, err
	}

	var cfg domain.ReportConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ReportConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ReportConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	// If a profile is set, merge its preset under explicit values.
	if cfg.Profile != "" {
		defaults := domain.DefaultConfigForProfile(cfg.Profile)
		cfg = mergeConfig(defaults, cfg)
	}

	return cfg, nil
}

// mergeConfig overlays explicit overrides on top of profile defaults.
// Explicit (non-zero) values always win; booleans can only be switched on.
func mergeConfig(base, override domain.ReportConfig) domain.ReportConfig {
	result := base

	if override.MinLevel != 0 {
		result.MinLevel = override.MinLevel
	}
	if len(override.DisabledRules) > 0 {
		result.DisabledRules = override.DisabledRules
	}
	if len(override.LevelOverrides) > 0 {
		result.LevelOverrides = override.LevelOverrides
	}
	result.ShowDisabled = base.ShowDisabled || override.ShowDisabled
	result.Strict = base.Strict || override.Strict

	return result
}
