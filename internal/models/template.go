package models

// Template is a reusable content blueprint with ${name} placeholders.
// Variables is derived from Content and re-computed on every save so
// the two can never diverge.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content"`
	Variables   []string `json:"variables"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt,omitempty"`
}
