package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"net/mail"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/email"
	"vibe-backend/internal/logger"
	"vibe-backend/internal/referral"
	"vibe-backend/internal/repository"
	"vibe-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	bcryptCost        = 12
)

type invitationService struct {
	userRepo     repository.UserRepository
	inviteRepo   repository.InvitationRepository
	registration repository.RegistrationRepository
	dispatcher   *email.Dispatcher
	tokens       security.TokenManager
	expiry       time.Duration
	appURL       string
}

func NewInvitationService(
	userRepo repository.UserRepository,
	inviteRepo repository.InvitationRepository,
	registration repository.RegistrationRepository,
	dispatcher *email.Dispatcher,
	tokens security.TokenManager,
	expiry time.Duration,
	appURL string,
) InvitationService {
	return &invitationService{
		userRepo:     userRepo,
		inviteRepo:   inviteRepo,
		registration: registration,
		dispatcher:   dispatcher,
		tokens:       tokens,
		expiry:       expiry,
		appURL:       appURL,
	}
}

// Issue creates a pending invitation for the email and queues the
// invitation mail. The duplicate check and the insert are not one atomic
// unit; two concurrent issues for the same email can both succeed. That
// race is accepted for an invitation flow.
func (s *invitationService) Issue(ctx context.Context, inviterID, targetEmail string) (*domain.Invitation, error) {
	if _, err := mail.ParseAddress(targetEmail); err != nil {
		return nil, fmt.Errorf("%w: malformed email", ErrValidation)
	}

	inviter, err := s.userRepo.GetByID(ctx, inviterID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	existing, err := s.inviteRepo.GetPendingByEmail(ctx, targetEmail, now)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicatePendingInvitation
	}

	inv := &domain.Invitation{
		ID:        uuid.New().String(),
		Email:     targetEmail,
		Code:      generateCode(),
		IsUsed:    false,
		ExpiresAt: now.Add(s.expiry),
		InviterID: inviter.ID,
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	// Delivery is best-effort and never rolls back the invitation row.
	s.dispatcher.Enqueue(email.NewInvitationMessage(s.appURL, inv.Email, inviter.Email, inv.Code))

	logger.Info("Invitation issued", "invitation_id", inv.ID, "inviter_id", inviter.ID)
	return inv, nil
}

func (s *invitationService) Verify(ctx context.Context, targetEmail, code string) error {
	if len(code) != 6 {
		return fmt.Errorf("%w: code must be 6 digits", ErrValidation)
	}
	_, err := s.inviteRepo.GetPendingByEmailAndCode(ctx, targetEmail, code, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}
	return nil
}

// Redeem turns a pending invitation into a new network member. Member
// creation, profile creation and invitation consumption happen in a single
// transaction; on any failure nothing is applied.
func (s *invitationService) Redeem(ctx context.Context, input RedeemInput) (*domain.User, string, string, error) {
	if err := validateRedeemInput(input); err != nil {
		return nil, "", "", err
	}

	inv, err := s.inviteRepo.GetPendingByEmailAndCode(ctx, input.Email, input.Code, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", "", ErrInvalidOrExpiredCode
		}
		return nil, "", "", err
	}

	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", "", ErrEmailAlreadyRegistered
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, "", "", err
	}

	inviter, err := s.userRepo.GetByID(ctx, inv.InviterID)
	if err != nil {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", "", err
	}

	position := referral.Child(referral.Position{
		Level: inviter.InvitationLevel,
		Path:  inviter.InvitationPath,
	}, inviter.ID)

	user := &domain.User{
		ID:              uuid.New().String(),
		Email:           input.Email,
		PasswordHash:    string(hash),
		Role:            domain.UserRoleFree,
		InvitationLevel: position.Level,
		InvitationPath:  position.Path,
	}

	profiles := make([]domain.Profile, len(input.Profiles))
	copy(profiles, input.Profiles)
	for i := range profiles {
		profiles[i].ID = uuid.New().String()
	}

	if err := s.registration.CreateMember(ctx, user, profiles, inv.ID); err != nil {
		return nil, "", "", err
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}

	logger.Info("Invitation redeemed", "invitation_id", inv.ID, "user_id", user.ID, "level", user.InvitationLevel)
	return user, access, refresh, nil
}

// Resend resets the expiry of a pending invitation and queues the mail again.
func (s *invitationService) Resend(ctx context.Context, inviterID, invitationID string) error {
	inv, err := s.inviteRepo.GetUnusedByIDAndInviter(ctx, invitationID, inviterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvitationNotFound
		}
		return err
	}

	inviter, err := s.userRepo.GetByID(ctx, inviterID)
	if err != nil {
		return err
	}

	if err := s.inviteRepo.UpdateExpiry(ctx, inv.ID, time.Now().Add(s.expiry)); err != nil {
		return err
	}

	s.dispatcher.Enqueue(email.NewInvitationReminderMessage(s.appURL, inv.Email, inviter.Email, inv.Code))
	return nil
}

func (s *invitationService) List(ctx context.Context, inviterID string) ([]domain.Invitation, *domain.InvitationStats, error) {
	invitations, err := s.inviteRepo.ListByInviter(ctx, inviterID)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.inviteRepo.StatsByInviter(ctx, inviterID, time.Now())
	if err != nil {
		return nil, nil, err
	}
	return invitations, stats, nil
}

func validateRedeemInput(input RedeemInput) error {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return fmt.Errorf("%w: malformed email", ErrValidation)
	}
	if len(input.Code) != 6 {
		return fmt.Errorf("%w: code must be 6 digits", ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if len(input.Profiles) < 1 || len(input.Profiles) > 2 {
		return fmt.Errorf("%w: between 1 and 2 profiles required", ErrValidation)
	}
	for _, p := range input.Profiles {
		if p.Type != domain.ProfileTypeHe && p.Type != domain.ProfileTypeShe {
			return fmt.Errorf("%w: unknown profile type %q", ErrValidation, p.Type)
		}
		if len(p.Name) < 2 {
			return fmt.Errorf("%w: profile name too short", ErrValidation)
		}
	}
	return nil
}

// generateCode returns a uniform random 6-digit numeric code.
func generateCode() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}
