// Package config loads the tool's configuration from the data
// directory. A missing config file is not an error: every option has a
// default and the zero configuration is fully usable.
package config

import (
	"os"
	"path/filepath"

	"github.com/codeprompt/companion/internal/models"
	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// Features gates optional behaviors and view groupings.
type Features struct {
	Favorites bool `yaml:"favorites"`
	Analytics bool `yaml:"analytics"`
	Templates bool `yaml:"templates"`
	Search    bool `yaml:"search"`
}

// AnalyticsSettings controls usage tracking.
type AnalyticsSettings struct {
	TrackUsage bool `yaml:"trackUsage"`
	// StoreDuration is recognized for forward compatibility but no
	// retention sweep is applied yet.
	StoreDuration int `yaml:"storeDuration"`
}

// TemplateSettings controls the stored-template collection.
type TemplateSettings struct {
	MaxTemplates    int  `yaml:"maxTemplates"`
	AllowDuplicates bool `yaml:"allowDuplicates"`
}

// Config is the read-only configuration surface consumed by the core.
type Config struct {
	Features        Features          `yaml:"features"`
	SortOrder       string            `yaml:"sortOrder"`
	Analytics       AnalyticsSettings `yaml:"analytics"`
	Templates       TemplateSettings  `yaml:"templates"`
	MaxHistoryItems int               `yaml:"maxHistoryItems"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Features: Features{
			Favorites: true,
			Analytics: true,
			Templates: true,
			Search:    true,
		},
		SortOrder: models.SortAlphabetical,
		Analytics: AnalyticsSettings{
			TrackUsage:    true,
			StoreDuration: 30,
		},
		Templates: TemplateSettings{
			MaxTemplates:    100,
			AllowDuplicates: false,
		},
		MaxHistoryItems: 10,
	}
}

// Load reads config.yaml from baseDir, falling back to defaults for a
// missing file. A malformed file is an error; silently ignoring it
// would make misconfigurations invisible.
func Load(baseDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(baseDir, configFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs out-of-range values rather than rejecting them.
func (c *Config) normalize() {
	switch c.SortOrder {
	case models.SortAlphabetical, models.SortMostUsed, models.SortRecentlyUsed:
	default:
		c.SortOrder = models.SortAlphabetical
	}
	if c.MaxHistoryItems <= 0 {
		c.MaxHistoryItems = 10
	}
	if c.Templates.MaxTemplates <= 0 {
		c.Templates.MaxTemplates = 100
	}
	if c.Analytics.StoreDuration <= 0 {
		c.Analytics.StoreDuration = 30
	}
}

// DataDir resolves the data directory: $CODEPROMPT_DIR if set,
// otherwise ~/.codeprompt.
func DataDir() (string, error) {
	if dir := os.Getenv("CODEPROMPT_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".codeprompt"), nil
}
