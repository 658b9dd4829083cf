package models

// User represents a user in the system
type User struct {
	Username  string `json:"username" db:"username" yaml:"username"`
	Name      string `json:"name" db:"name" yaml:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url" yaml:"avatar_url"`
}
