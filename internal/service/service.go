package service

import (
	"context"
	"errors"

	"vibe-backend/internal/domain"
)

var (
	ErrValidation                 = errors.New("invalid input")
	ErrDuplicatePendingInvitation = errors.New("invitation already sent and still valid")
	ErrInvalidOrExpiredCode       = errors.New("invalid or expired invitation code")
	ErrEmailAlreadyRegistered     = errors.New("email already exists")
	ErrInvitationNotFound         = errors.New("invalid invitation")
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrInvalidToken               = errors.New("invalid token")
)

// RedeemInput carries everything needed to turn an invitation into a member.
type RedeemInput struct {
	Email    string
	Code     string
	Password string
	Profiles []domain.Profile
}

type InvitationService interface {
	Issue(ctx context.Context, inviterID, email string) (*domain.Invitation, error)
	Verify(ctx context.Context, email, code string) error
	Redeem(ctx context.Context, input RedeemInput) (*domain.User, string, string, error) // user, access, refresh
	Resend(ctx context.Context, inviterID, invitationID string) error
	List(ctx context.Context, inviterID string) ([]domain.Invitation, *domain.InvitationStats, error)
}

type NetworkService interface {
	ComputeStats(ctx context.Context, userID string) (*domain.NetworkStats, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Session(ctx context.Context, userID string) (*domain.User, error)
}

type UserService interface {
	UpdateLocation(ctx context.Context, userID string, lat, lng float64) error
	Nearby(ctx context.Context, userID string, lat, lng float64) ([]domain.NearbyUser, error)
}
