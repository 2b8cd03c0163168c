package service_test

import (
	"context"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/email"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListProfiles(ctx context.Context, userID string) ([]domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}
func (m *MockUserRepo) UpdateLastOnline(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateLocation(ctx context.Context, id string, lat, lng float64, at time.Time) error {
	args := m.Called(ctx, id, lat, lng, at)
	return args.Error(0)
}
func (m *MockUserRepo) ListWithFreshLocation(ctx context.Context, excludeID string, since time.Time) ([]domain.User, error) {
	args := m.Called(ctx, excludeID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ClearLocationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUserRepo) ListNetwork(ctx context.Context, userID string) ([]domain.NetworkMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NetworkMember), args.Error(1)
}

// MockInviteRepo
type MockInviteRepo struct {
	mock.Mock
}

func (m *MockInviteRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInviteRepo) GetPendingByEmail(ctx context.Context, email string, now time.Time) (*domain.Invitation, error) {
	args := m.Called(ctx, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInviteRepo) GetPendingByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*domain.Invitation, error) {
	args := m.Called(ctx, email, code, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInviteRepo) GetUnusedByIDAndInviter(ctx context.Context, id, inviterID string) (*domain.Invitation, error) {
	args := m.Called(ctx, id, inviterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInviteRepo) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}
func (m *MockInviteRepo) ListByInviter(ctx context.Context, inviterID string) ([]domain.Invitation, error) {
	args := m.Called(ctx, inviterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockInviteRepo) StatsByInviter(ctx context.Context, inviterID string, now time.Time) (*domain.InvitationStats, error) {
	args := m.Called(ctx, inviterID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationStats), args.Error(1)
}
func (m *MockInviteRepo) ListExpiringUnreminded(ctx context.Context, from, to time.Time) ([]domain.Invitation, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockInviteRepo) MarkReminded(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockRegistrationRepo
type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) CreateMember(ctx context.Context, user *domain.User, profiles []domain.Profile, invitationID string) error {
	args := m.Called(ctx, user, profiles, invitationID)
	return args.Error(0)
}

// recordingSender captures messages handed to the email dispatcher.
type recordingSender struct {
	sent []email.Message
}

func (s *recordingSender) Send(msg email.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

// newTestDispatcher returns a dispatcher that is never started, so
// enqueued mail just sits in the channel; issuance must not depend on
// delivery happening at all.
func newTestDispatcher() *email.Dispatcher {
	return email.NewDispatcher(&recordingSender{}, 1, 16, 1)
}
