package workspacefinder

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/acuetara/humo/internal/domain"
)

// LoadConfig loads humo.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, "humo.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Humo.Masking.Enabled != nil {
		cfg.Masking.Enabled = *y.Humo.Masking.Enabled
	}
	if y.Humo.Defaults.Target != "" {
		cfg.Defaults.Target = y.Humo.Defaults.Target
	}
	if y.Humo.Paths.SuitesDir != "" {
		cfg.Paths.SuitesDir = y.Humo.Paths.SuitesDir
	}
	if y.Humo.Paths.TargetsDir != "" {
		cfg.Paths.TargetsDir = y.Humo.Paths.TargetsDir
	}
	if y.Humo.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Humo.Paths.RunsDir
	}
	if y.Humo.Paths.ReportsDir != "" {
		cfg.Paths.ReportsDir = y.Humo.Paths.ReportsDir
	}
	if y.Humo.HTTP.TimeoutMS != nil && *y.Humo.HTTP.TimeoutMS > 0 {
		cfg.HTTP.TimeoutMS = *y.Humo.HTTP.TimeoutMS
	}
	if y.Humo.HTTP.Concurrency != nil && *y.Humo.HTTP.Concurrency > 0 {
		cfg.HTTP.Concurrency = *y.Humo.HTTP.Concurrency
	}

	return cfg, nil
}

type yamlConfig struct {
	Humo struct {
		Masking struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"masking"`

		Defaults struct {
			Target string `yaml:"target"`
		} `yaml:"defaults"`

		Paths struct {
			SuitesDir  string `yaml:"suites_dir"`
			TargetsDir string `yaml:"targets_dir"`
			RunsDir    string `yaml:"runs_dir"`
			ReportsDir string `yaml:"reports_dir"`
		} `yaml:"paths"`

		HTTP struct {
			TimeoutMS   *int `yaml:"timeout_ms"`
			Concurrency *int `yaml:"concurrency"`
		} `yaml:"http"`
	} `yaml:"humo"`
}
