package domain

import "time"

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleFree    UserRole = "FREE"
	UserRolePremium UserRole = "PREMIUM"
)

type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`

	// Position in the referral forest. InvitationLevel is 0 for seed users;
	// InvitationPath is the chain of ancestor IDs from the root down to
	// (excluding) this user, joined by ">". Empty for seed users.
	InvitationLevel int    `json:"invitation_level"`
	InvitationPath  string `json:"invitation_path"`

	LastOnline time.Time `json:"last_online"`

	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	LastLocationAt *time.Time `json:"last_location_at,omitempty"`

	Profiles []Profile `json:"profiles,omitempty"` // Populated when needed

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
