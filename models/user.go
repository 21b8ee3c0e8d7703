package models

import (
	"time"
)

// UserProfile is the skill/interest/budget profile submitted for idea generation
type UserProfile struct {
	Skills       []string `json:"skills"`
	Interests    []string `json:"interests"`
	CapitalRange string   `json:"capitalRange"`
}

// User represents a user entity
type User struct {
	UserID        string    `json:"userId"`
	FarcasterID   *string   `json:"farcasterId,omitempty"`
	Skills        []string  `json:"skills"`
	Interests     []string  `json:"interests"`
	CapitalRange  string    `json:"capitalRange"`
	PremiumStatus bool      `json:"premiumStatus"` // Stored only, never enforced here
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Profile returns the generation profile last submitted by the user
func (u *User) Profile() UserProfile {
	return UserProfile{
		Skills:       u.Skills,
		Interests:    u.Interests,
		CapitalRange: u.CapitalRange,
	}
}
