// Package service provides business logic for prompt and template
// management. A Service owns the authoritative prompt collection
// (built-in table plus user-added prompts), the favorite-id set and the
// stored templates, and persists every mutation synchronously through
// the storage layer.
package service

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/codeprompt/companion/internal/config"
	apperrors "github.com/codeprompt/companion/internal/errors"
	"github.com/codeprompt/companion/internal/models"
	"github.com/codeprompt/companion/internal/storage"
	"github.com/codeprompt/companion/internal/template"
	"github.com/google/uuid"
)

// Service provides business logic for prompt management
type Service struct {
	cfg     *config.Config
	storage *storage.Storage

	builtins    []models.Prompt
	custom      []models.Prompt
	favoriteIDs []string
	templates   []models.Template
}

// ImportResult reports the outcome of an import: how many records were
// appended, how many invalid records were dropped, and how many ids had
// to be reassigned because they collided with existing prompts.
type ImportResult struct {
	Imported   int
	Dropped    int
	Reassigned int
}

// NewService creates a service backed by the given storage, loading the
// persisted state eagerly. The collections are small; reading them once
// up front keeps every operation synchronous and in-memory afterwards.
func NewService(cfg *config.Config, store *storage.Storage) (*Service, error) {
	custom, err := store.LoadCustomPrompts()
	if err != nil {
		return nil, apperrors.StorageError("load prompts", err)
	}
	favorites, err := store.LoadFavorites()
	if err != nil {
		return nil, apperrors.StorageError("load favorites", err)
	}
	templates, err := store.LoadTemplates()
	if err != nil {
		return nil, apperrors.StorageError("load templates", err)
	}

	return &Service{
		cfg:         cfg,
		storage:     store,
		builtins:    builtinPrompts(),
		custom:      custom,
		favoriteIDs: favorites,
		templates:   templates,
	}, nil
}

// InitLibrary initializes the data directory.
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// ListPrompts returns built-in prompts in their fixed order followed by
// user-added prompts in insertion order, each annotated with its
// favorite status at call time. The returned prompts are copies; the
// caller cannot mutate store state through them.
func (s *Service) ListPrompts() []models.Prompt {
	favorites := make(map[string]bool, len(s.favoriteIDs))
	for _, id := range s.favoriteIDs {
		favorites[id] = true
	}

	prompts := make([]models.Prompt, 0, len(s.builtins)+len(s.custom))
	prompts = append(prompts, s.builtins...)
	prompts = append(prompts, s.custom...)
	for i := range prompts {
		prompts[i].IsFavorite = favorites[prompts[i].ID]
	}
	return prompts
}

// GetPrompt returns the prompt with the given id.
func (s *Service) GetPrompt(id string) (models.Prompt, error) {
	for _, p := range s.ListPrompts() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Prompt{}, apperrors.NotFoundError(fmt.Sprintf("prompt %q", id))
}

// PromptDraft carries the caller-supplied fields for a new prompt. The
// store assigns id and timestamps.
type PromptDraft struct {
	Label    string
	Text     string
	Category string
	Tags     []string
	Language string
}

// AddPrompt appends a new user prompt and persists the collection.
func (s *Service) AddPrompt(draft PromptDraft) (models.Prompt, error) {
	if draft.Label == "" || draft.Text == "" || draft.Category == "" {
		return models.Prompt{}, apperrors.ValidationError("prompt needs a label, text and category")
	}

	now := models.Now()
	prompt := models.Prompt{
		ID:        uuid.NewString(),
		Label:     draft.Label,
		Text:      draft.Text,
		Category:  draft.Category,
		Tags:      draft.Tags,
		Language:  draft.Language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prompt.Tags == nil {
		prompt.Tags = []string{}
	}

	s.custom = append(s.custom, prompt)
	if err := s.storage.SaveCustomPrompts(s.custom); err != nil {
		return models.Prompt{}, err
	}
	return prompt, nil
}

// PromptPatch carries partial updates for EditPrompt. Nil fields are
// left unchanged.
type PromptPatch struct {
	Label    *string
	Text     *string
	Category *string
	Language *string
	Tags     []string
}

// EditPrompt merges the patch into the user prompt with the given id
// and persists. Unknown ids and built-in ids are silent no-ops:
// built-ins are read-only and callers observe the effect via
// GetPrompt, not via an error.
func (s *Service) EditPrompt(id string, patch PromptPatch) error {
	for i := range s.custom {
		if s.custom[i].ID != id {
			continue
		}
		if patch.Label != nil {
			s.custom[i].Label = *patch.Label
		}
		if patch.Text != nil {
			s.custom[i].Text = *patch.Text
		}
		if patch.Category != nil {
			s.custom[i].Category = *patch.Category
		}
		if patch.Language != nil {
			s.custom[i].Language = *patch.Language
		}
		if patch.Tags != nil {
			s.custom[i].Tags = patch.Tags
		}
		s.custom[i].UpdatedAt = models.Now()
		return s.storage.SaveCustomPrompts(s.custom)
	}
	return nil
}

// DeletePrompt removes the user prompt with the given id and persists.
// Unknown ids and built-in ids are silent no-ops.
func (s *Service) DeletePrompt(id string) error {
	for i := range s.custom {
		if s.custom[i].ID == id {
			s.custom = append(s.custom[:i], s.custom[i+1:]...)
			return s.storage.SaveCustomPrompts(s.custom)
		}
	}
	return nil
}

// ToggleFavorite flips membership of id in the favorite-id set and
// persists. Favorites are independent of prompt mutability, so built-in
// ids work too.
func (s *Service) ToggleFavorite(id string) error {
	for i, fid := range s.favoriteIDs {
		if fid == id {
			s.favoriteIDs = append(s.favoriteIDs[:i], s.favoriteIDs[i+1:]...)
			return s.storage.SaveFavorites(s.favoriteIDs)
		}
	}
	s.favoriteIDs = append(s.favoriteIDs, id)
	return s.storage.SaveFavorites(s.favoriteIDs)
}

// IsFavorite reports whether id is in the favorite set.
func (s *Service) IsFavorite(id string) bool {
	for _, fid := range s.favoriteIDs {
		if fid == id {
			return true
		}
	}
	return false
}

// ExportPrompts serializes the user-added collection (not built-ins,
// not favorites) as a JSON array to the given path.
func (s *Service) ExportPrompts(path string) error {
	data, err := json.MarshalIndent(s.custom, "", "  ")
	if err != nil {
		return apperrors.StorageError("export prompts", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.StorageError("export prompts", err)
	}
	return nil
}

// ImportPrompts reads a JSON array of prompt records from path and
// appends the valid ones to the user collection. Invalid records are
// dropped and counted; records whose id collides with an existing
// prompt get a fresh id so the id-uniqueness invariant holds.
func (s *Service) ImportPrompts(path string) (ImportResult, error) {
	var result ImportResult

	data, err := os.ReadFile(path)
	if err != nil {
		return result, apperrors.StorageError("import prompts", err)
	}

	var candidates []models.Prompt
	if err := json.Unmarshal(data, &candidates); err != nil {
		return result, apperrors.Wrap(err, apperrors.ErrCodeInvalidFormat, "import file is not a JSON array of prompts")
	}

	existing := make(map[string]bool)
	for _, p := range s.ListPrompts() {
		existing[p.ID] = true
	}

	now := models.Now()
	for _, candidate := range candidates {
		if !candidate.Valid() {
			result.Dropped++
			continue
		}
		if existing[candidate.ID] {
			candidate.ID = uuid.NewString()
			result.Reassigned++
		}
		existing[candidate.ID] = true
		if candidate.CreatedAt == 0 {
			candidate.CreatedAt = now
		}
		if candidate.UpdatedAt == 0 {
			candidate.UpdatedAt = now
		}
		s.custom = append(s.custom, candidate)
		result.Imported++
	}

	if result.Imported > 0 {
		if err := s.storage.SaveCustomPrompts(s.custom); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Template management

// ListTemplates returns the stored templates in insertion order.
func (s *Service) ListTemplates() []models.Template {
	return append([]models.Template(nil), s.templates...)
}

// GetTemplate returns the template with the given id.
func (s *Service) GetTemplate(id string) (models.Template, error) {
	for _, t := range s.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Template{}, apperrors.NotFoundError(fmt.Sprintf("template %q", id))
}

// AddTemplate stores a new template. Variables are derived from the
// content, the configured template cap is enforced, and duplicate
// content is rejected unless templates.allowDuplicates is set.
func (s *Service) AddTemplate(name, description, content string) (models.Template, error) {
	if name == "" || content == "" {
		return models.Template{}, apperrors.ValidationError("template needs a name and content")
	}
	if len(s.templates) >= s.cfg.Templates.MaxTemplates {
		return models.Template{}, apperrors.QuotaExceededError(
			fmt.Sprintf("template limit reached (%d)", s.cfg.Templates.MaxTemplates))
	}
	if !s.cfg.Templates.AllowDuplicates {
		for _, t := range s.templates {
			if t.Content == content {
				return models.Template{}, apperrors.AlreadyExistsError(
					fmt.Sprintf("a template with the same content (%q)", t.Name))
			}
		}
	}

	tmpl := models.Template{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Content:     content,
		Variables:   template.ExtractVariables(content),
		CreatedAt:   models.Now(),
	}
	if tmpl.Variables == nil {
		tmpl.Variables = []string{}
	}

	s.templates = append(s.templates, tmpl)
	if err := s.storage.SaveTemplates(s.templates); err != nil {
		return models.Template{}, err
	}
	return tmpl, nil
}

// TemplatePatch carries partial updates for UpdateTemplate.
type TemplatePatch struct {
	Name        *string
	Description *string
	Content     *string
}

// UpdateTemplate merges the patch into the stored template and
// re-derives its variables so they can never diverge from the content.
// An unknown id is a silent no-op.
func (s *Service) UpdateTemplate(id string, patch TemplatePatch) error {
	for i := range s.templates {
		if s.templates[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.templates[i].Name = *patch.Name
		}
		if patch.Description != nil {
			s.templates[i].Description = *patch.Description
		}
		if patch.Content != nil {
			s.templates[i].Content = *patch.Content
		}
		s.templates[i].Variables = template.ExtractVariables(s.templates[i].Content)
		if s.templates[i].Variables == nil {
			s.templates[i].Variables = []string{}
		}
		s.templates[i].UpdatedAt = models.Now()
		return s.storage.SaveTemplates(s.templates)
	}
	return nil
}

// DeleteTemplate removes the stored template. An unknown id is a
// silent no-op.
func (s *Service) DeleteTemplate(id string) error {
	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			return s.storage.SaveTemplates(s.templates)
		}
	}
	return nil
}
