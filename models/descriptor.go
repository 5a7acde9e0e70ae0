package models

// CategoryDescriptor holds editorial metadata for one category, keyed by
// its lower-cased slug in the descriptor file. It is sourced from the
// _categories.md collaborator file and is independent of post data.
type CategoryDescriptor struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Alt         string `json:"alt,omitempty"`
}
