// Package storage handles persistence for the prompt companion. State
// lives in a small set of independent JSON files under the data
// directory, one per logical key:
//
//	custom_prompts.json    user-added prompts
//	favorite_prompts.json  favorite prompt ids
//	prompt_analytics.json  usage counters
//	prompt_templates.json  stored templates
//
// Each file is written whole on every mutation; the files are
// independently consistent and there is no cross-file transaction.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codeprompt/companion/internal/models"
)

const (
	customPromptsFile   = "custom_prompts.json"
	favoritePromptsFile = "favorite_prompts.json"
	analyticsFile       = "prompt_analytics.json"
	templatesFile       = "prompt_templates.json"

	dataVersion = "1.0"
)

// Storage handles all file system operations for prompts, favorites,
// analytics and templates.
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance rooted at rootPath. An
// empty rootPath resolves to ~/.codeprompt.
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".codeprompt")
	}
	return &Storage{rootPath: rootPath}, nil
}

// InitLibrary creates the directory structure for the data directory.
func (s *Storage) InitLibrary() error {
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.rootPath, err)
	}
	return nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// promptsData is the JSON envelope for the custom prompts file
type promptsData struct {
	Prompts []models.Prompt `json:"prompts"`
	Version string          `json:"version"`
}

// favoritesData is the JSON envelope for the favorites file
type favoritesData struct {
	IDs     []string `json:"ids"`
	Version string   `json:"version"`
}

// templatesData is the JSON envelope for the templates file
type templatesData struct {
	Templates []models.Template `json:"templates"`
	Version   string            `json:"version"`
}

// analyticsData is the JSON envelope for the analytics file
type analyticsData struct {
	Analytics *models.AnalyticsRecord `json:"analytics"`
	Version   string                  `json:"version"`
}

// LoadCustomPrompts loads the user-added prompts, in insertion order.
// A missing file yields an empty collection.
func (s *Storage) LoadCustomPrompts() ([]models.Prompt, error) {
	var data promptsData
	if err := s.readJSON(customPromptsFile, &data); err != nil {
		return nil, err
	}
	if data.Prompts == nil {
		return []models.Prompt{}, nil
	}
	return data.Prompts, nil
}

// SaveCustomPrompts writes the user-added prompt collection.
func (s *Storage) SaveCustomPrompts(prompts []models.Prompt) error {
	return s.writeJSON(customPromptsFile, promptsData{Prompts: prompts, Version: dataVersion})
}

// LoadFavorites loads the favorite prompt id set.
func (s *Storage) LoadFavorites() ([]string, error) {
	var data favoritesData
	if err := s.readJSON(favoritePromptsFile, &data); err != nil {
		return nil, err
	}
	if data.IDs == nil {
		return []string{}, nil
	}
	return data.IDs, nil
}

// SaveFavorites writes the favorite prompt id set.
func (s *Storage) SaveFavorites(ids []string) error {
	return s.writeJSON(favoritePromptsFile, favoritesData{IDs: ids, Version: dataVersion})
}

// LoadAnalytics loads the usage record, or an all-empty record if none
// has been written yet.
func (s *Storage) LoadAnalytics() (*models.AnalyticsRecord, error) {
	var data analyticsData
	if err := s.readJSON(analyticsFile, &data); err != nil {
		return nil, err
	}
	if data.Analytics == nil {
		return models.NewAnalyticsRecord(), nil
	}
	// Maps may be nil after decoding an older or partial file
	if data.Analytics.UsageCount == nil {
		data.Analytics.UsageCount = make(map[string]int)
	}
	if data.Analytics.LastUsed == nil {
		data.Analytics.LastUsed = make(map[string]int64)
	}
	if data.Analytics.CategoryUsage == nil {
		data.Analytics.CategoryUsage = make(map[string]int)
	}
	return data.Analytics, nil
}

// SaveAnalytics writes the usage record as a single atomic file write.
func (s *Storage) SaveAnalytics(record *models.AnalyticsRecord) error {
	return s.writeJSON(analyticsFile, analyticsData{Analytics: record, Version: dataVersion})
}

// LoadTemplates loads the stored templates.
func (s *Storage) LoadTemplates() ([]models.Template, error) {
	var data templatesData
	if err := s.readJSON(templatesFile, &data); err != nil {
		return nil, err
	}
	if data.Templates == nil {
		return []models.Template{}, nil
	}
	return data.Templates, nil
}

// SaveTemplates writes the stored templates.
func (s *Storage) SaveTemplates(templates []models.Template) error {
	return s.writeJSON(templatesFile, templatesData{Templates: templates, Version: dataVersion})
}

// readJSON reads a JSON file into v. A missing file leaves v untouched.
func (s *Storage) readJSON(name string, v interface{}) error {
	path := filepath.Join(s.rootPath, name)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// writeJSON writes v as indented JSON, creating the directory if needed.
func (s *Storage) writeJSON(name string, v interface{}) error {
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(s.rootPath, name)
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
