package models

// Topic represents an article topic
type Topic struct {
	Slug        string `json:"slug" db:"slug" yaml:"slug"`
	Description string `json:"description" db:"description" yaml:"description"`
}
