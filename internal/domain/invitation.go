package domain

import "time"

type Invitation struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Code          string     `json:"code"`
	IsUsed        bool       `json:"is_used"`
	ExpiresAt     time.Time  `json:"expires_at"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
	InviterID     string     `json:"inviter_id"`
	InvitedUserID *string    `json:"invited_user_id,omitempty"`
	CreatedOn     time.Time  `json:"created_on"`
}

// Pending reports whether the invitation can still be redeemed.
func (i *Invitation) Pending(now time.Time) bool {
	return !i.IsUsed && i.ExpiresAt.After(now)
}

// InvitationStats summarizes the invitations a single user has sent.
type InvitationStats struct {
	Total          int     `json:"total"`
	Used           int     `json:"used"`
	Pending        int     `json:"pending"`
	Expired        int     `json:"expired"`
	LastWeek       int     `json:"last_week"`
	ConversionRate float64 `json:"conversion_rate"`
}
