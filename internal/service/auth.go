package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/logger"
	"vibe-backend/internal/repository"
	"vibe-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	// Login counts as activity for the 7-day active window.
	if err := s.userRepo.UpdateLastOnline(ctx, user.ID, time.Now()); err != nil {
		logger.Warn("Failed to update last online", "user_id", user.ID, "error", err)
	}

	user.Profiles, err = s.userRepo.ListProfiles(ctx, user.ID)
	if err != nil {
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

	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", ErrInvalidToken
	}

	access, err := s.tokens.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(claims.UserID, claims.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Session loads the authenticated user with profiles and touches their
// activity timestamp.
func (s *authService) Session(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastOnline(ctx, user.ID, time.Now()); err != nil {
		logger.Warn("Failed to update last online", "user_id", user.ID, "error", err)
	}

	user.Profiles, err = s.userRepo.ListProfiles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
