package models

import "time"

// User represents a user account in the system. The avatar is either
// a short glyph token or an uploaded image URL; at least one must be
// present at creation, both are never required.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	AvatarGlyph  string    `json:"avatarGlyph,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasAvatar reports whether at least one avatar representation is set.
func (u User) HasAvatar() bool {
	return u.AvatarGlyph != "" || u.AvatarURL != ""
}
