package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "vibe-backend/internal/api/http"
	"vibe-backend/internal/domain"
	"vibe-backend/internal/security"
	"vibe-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInvitationService struct{ mock.Mock }

func (m *mockInvitationService) Issue(ctx context.Context, inviterID, email string) (*domain.Invitation, error) {
	args := m.Called(ctx, inviterID, email)
	if inv := args.Get(0); inv != nil {
		return inv.(*domain.Invitation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInvitationService) Verify(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *mockInvitationService) Redeem(ctx context.Context, input service.RedeemInput) (*domain.User, string, string, error) {
	args := m.Called(ctx, input)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.String(1), args.String(2), args.Error(3)
	}
	return nil, args.String(1), args.String(2), args.Error(3)
}

func (m *mockInvitationService) Resend(ctx context.Context, inviterID, invitationID string) error {
	return m.Called(ctx, inviterID, invitationID).Error(0)
}

func (m *mockInvitationService) List(ctx context.Context, inviterID string) ([]domain.Invitation, *domain.InvitationStats, error) {
	args := m.Called(ctx, inviterID)
	var invitations []domain.Invitation
	if v := args.Get(0); v != nil {
		invitations = v.([]domain.Invitation)
	}
	var stats *domain.InvitationStats
	if v := args.Get(1); v != nil {
		stats = v.(*domain.InvitationStats)
	}
	return invitations, stats, args.Error(2)
}

type mockNetworkService struct{ mock.Mock }

func (m *mockNetworkService) ComputeStats(ctx context.Context, userID string) (*domain.NetworkStats, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*domain.NetworkStats), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.String(1), args.String(2), args.Error(3)
	}
	return nil, args.String(1), args.String(2), args.Error(3)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) Session(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) UpdateLocation(ctx context.Context, userID string, lat, lng float64) error {
	return m.Called(ctx, userID, lat, lng).Error(0)
}

func (m *mockUserService) Nearby(ctx context.Context, userID string, lat, lng float64) ([]domain.NearbyUser, error) {
	args := m.Called(ctx, userID, lat, lng)
	if u := args.Get(0); u != nil {
		return u.([]domain.NearbyUser), args.Error(1)
	}
	return nil, args.Error(1)
}

type testServer struct {
	router      http.Handler
	tokens      security.TokenManager
	invitations *mockInvitationService
	network     *mockNetworkService
	auth        *mockAuthService
	users       *mockUserService
}

func newTestServer() *testServer {
	s := &testServer{
		tokens:      security.NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour),
		invitations: &mockInvitationService{},
		network:     &mockNetworkService{},
		auth:        &mockAuthService{},
		users:       &mockUserService{},
	}
	s.router = api.NewRouter(
		s.tokens,
		api.NewAuthHandler(s.auth),
		api.NewInvitationHandler(s.invitations),
		api.NewNetworkHandler(s.network),
		api.NewUserHandler(s.users),
	)
	return s
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) accessToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := s.tokens.GenerateAccessToken(userID, "user@example.com")
	require.NoError(t, err)
	return token
}

func TestIssueInvitation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := newTestServer()
		s.invitations.On("Issue", mock.Anything, "user-1", "friend@example.com").
			Return(&domain.Invitation{ID: "inv-1", Email: "friend@example.com"}, nil)

		rec := s.request(t, http.MethodPost, "/api/invitations", s.accessToken(t, "user-1"),
			map[string]string{"email": "friend@example.com"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "inv-1", resp["id"])
		s.invitations.AssertExpectations(t)
	})

	t.Run("DuplicatePending", func(t *testing.T) {
		s := newTestServer()
		s.invitations.On("Issue", mock.Anything, "user-1", "friend@example.com").
			Return(nil, service.ErrDuplicatePendingInvitation)

		rec := s.request(t, http.MethodPost, "/api/invitations", s.accessToken(t, "user-1"),
			map[string]string{"email": "friend@example.com"})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("NoToken", func(t *testing.T) {
		s := newTestServer()

		rec := s.request(t, http.MethodPost, "/api/invitations", "",
			map[string]string{"email": "friend@example.com"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		s.invitations.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		s := newTestServer()
		refresh, err := s.tokens.GenerateRefreshToken("user-1", "user@example.com")
		require.NoError(t, err)

		rec := s.request(t, http.MethodPost, "/api/invitations", refresh,
			map[string]string{"email": "friend@example.com"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestVerifyInvitation(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s := newTestServer()
		s.invitations.On("Verify", mock.Anything, "friend@example.com", "482913").Return(nil)

		rec := s.request(t, http.MethodPost, "/api/invitations/verify", "",
			map[string]string{"email": "friend@example.com", "code": "482913"})

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp["valid"])
	})

	t.Run("InvalidCode", func(t *testing.T) {
		s := newTestServer()
		s.invitations.On("Verify", mock.Anything, "friend@example.com", "000000").
			Return(service.ErrInvalidOrExpiredCode)

		rec := s.request(t, http.MethodPost, "/api/invitations/verify", "",
			map[string]string{"email": "friend@example.com", "code": "000000"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := newTestServer()
		user := &domain.User{ID: "user-2", Email: "new@example.com", InvitationLevel: 1, InvitationPath: "user-1"}
		s.invitations.On("Redeem", mock.Anything, mock.MatchedBy(func(in service.RedeemInput) bool {
			return in.Email == "new@example.com" && in.Code == "482913" && len(in.Profiles) == 1
		})).Return(user, "access-token", "refresh-token", nil)

		rec := s.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":    "new@example.com",
			"password": "password123",
			"code":     "482913",
			"profiles": []map[string]string{{"type": "SHE", "name": "Ana"}},
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
	})

	t.Run("EmailAlreadyRegistered", func(t *testing.T) {
		s := newTestServer()
		s.invitations.On("Redeem", mock.Anything, mock.Anything).
			Return(nil, "", "", service.ErrEmailAlreadyRegistered)

		rec := s.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email": "taken@example.com", "password": "password123", "code": "482913",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		s := newTestServer()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNetworkStats(t *testing.T) {
	s := newTestServer()
	stats := &domain.NetworkStats{
		NetworkSize:      6,
		NetworkByLevel:   map[int]int{1: 2, 2: 3, 3: 1},
		ActiveUsers:      4,
		ViralCoefficient: 0.5,
		NetworkDepth:     3,
		TopInviters:      []domain.TopInviter{{ID: "b", Name: "Bea", Invitations: 3, Level: 1}},
	}
	s.network.On("ComputeStats", mock.Anything, "user-1").Return(stats, nil)

	rec := s.request(t, http.MethodGet, "/api/invitations/stats", s.accessToken(t, "user-1"), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp domain.NetworkStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.NetworkSize)
	assert.Equal(t, 3, resp.NetworkDepth)
	assert.Equal(t, map[int]int{1: 2, 2: 3, 3: 1}, resp.NetworkByLevel)
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := newTestServer()
		user := &domain.User{ID: "user-1", Email: "user@example.com"}
		s.auth.On("Login", mock.Anything, "user@example.com", "password123").
			Return(user, "access-token", "refresh-token", nil)

		rec := s.request(t, http.MethodPost, "/api/auth/login", "",
			map[string]string{"email": "user@example.com", "password": "password123"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		s := newTestServer()
		s.auth.On("Login", mock.Anything, "user@example.com", "wrong").
			Return(nil, "", "", service.ErrInvalidCredentials)

		rec := s.request(t, http.MethodPost, "/api/auth/login", "",
			map[string]string{"email": "user@example.com", "password": "wrong"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestNearby(t *testing.T) {
	s := newTestServer()
	s.users.On("Nearby", mock.Anything, "user-1", 52.52, 13.405).
		Return([]domain.NearbyUser{{ID: "user-2", DistanceKm: 3.2}}, nil)

	rec := s.request(t, http.MethodGet, "/api/users/nearby?lat=52.52&lng=13.405",
		s.accessToken(t, "user-1"), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	s.users.AssertExpectations(t)
}

func TestUpdateLocation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := newTestServer()
		s.users.On("UpdateLocation", mock.Anything, "user-1", 52.52, 13.405).Return(nil)

		rec := s.request(t, http.MethodPost, "/api/users/location", s.accessToken(t, "user-1"),
			map[string]float64{"latitude": 52.52, "longitude": 13.405})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		s := newTestServer()
		s.users.On("UpdateLocation", mock.Anything, "user-1", 200.0, 13.405).
			Return(service.ErrValidation)

		rec := s.request(t, http.MethodPost, "/api/users/location", s.accessToken(t, "user-1"),
			map[string]float64{"latitude": 200, "longitude": 13.405})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
