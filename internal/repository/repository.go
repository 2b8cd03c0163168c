package repository

import (
	"context"
	"time"

	"vibe-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListProfiles(ctx context.Context, userID string) ([]domain.Profile, error)
	UpdateLastOnline(ctx context.Context, id string, at time.Time) error

	// Radar
	UpdateLocation(ctx context.Context, id string, lat, lng float64, at time.Time) error
	ListWithFreshLocation(ctx context.Context, excludeID string, since time.Time) ([]domain.User, error)
	ClearLocationsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// ListNetwork returns every user whose invitation path contains the
	// given user ID as a whole path segment, i.e. the user's proper
	// descendants in the referral forest, each with their own
	// sent-invitation count and first profile name.
	ListNetwork(ctx context.Context, userID string) ([]domain.NetworkMember, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetPendingByEmail(ctx context.Context, email string, now time.Time) (*domain.Invitation, error)
	GetPendingByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*domain.Invitation, error)
	GetUnusedByIDAndInviter(ctx context.Context, id, inviterID string) (*domain.Invitation, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	ListByInviter(ctx context.Context, inviterID string) ([]domain.Invitation, error)
	StatsByInviter(ctx context.Context, inviterID string, now time.Time) (*domain.InvitationStats, error)

	// Reminder support for the cron job.
	ListExpiringUnreminded(ctx context.Context, from, to time.Time) ([]domain.Invitation, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

// RegistrationRepository performs the redemption transaction: member
// creation, profile creation and invitation consumption all commit or
// roll back together.
type RegistrationRepository interface {
	CreateMember(ctx context.Context, user *domain.User, profiles []domain.Profile, invitationID string) error
}
