package service_test

import (
	"context"
	"testing"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkService_ComputeStats_EmptyNetwork(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := service.NewNetworkService(userRepo)

	userRepo.On("ListNetwork", ctx, "lonely").Return([]domain.NetworkMember{}, nil)

	stats, err := svc.ComputeStats(ctx, "lonely")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.NetworkSize)
	assert.Equal(t, 0, stats.NetworkDepth)
	assert.Equal(t, 0, stats.ActiveUsers)
	assert.Zero(t, stats.ViralCoefficient)
	assert.Empty(t, stats.TopInviters)
}

func TestNetworkService_ComputeStats_ViralCoefficient(t *testing.T) {
	// A invited B and C; C invited D. A's network is {B, C, D}; among them
	// only C has sent an invitation, so the coefficient is 1/3.
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := service.NewNetworkService(userRepo)

	now := time.Now()
	members := []domain.NetworkMember{
		{ID: "b", Name: "Bea", Level: 1, LastOnline: now, SentInvites: 0},
		{ID: "c", Name: "Cal", Level: 1, LastOnline: now, SentInvites: 1},
		{ID: "d", Name: "Dee", Level: 2, LastOnline: now, SentInvites: 0},
	}
	userRepo.On("ListNetwork", ctx, "a").Return(members, nil)

	stats, err := svc.ComputeStats(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.NetworkSize)
	assert.InDelta(t, 1.0/3.0, stats.ViralCoefficient, 1e-9)
}

func TestNetworkService_ComputeStats_LevelGrouping(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := service.NewNetworkService(userRepo)

	now := time.Now()
	var members []domain.NetworkMember
	for i, level := range []int{1, 1, 2, 2, 2, 3} {
		members = append(members, domain.NetworkMember{
			ID:         string(rune('a' + i)),
			Level:      level,
			LastOnline: now,
		})
	}
	userRepo.On("ListNetwork", ctx, "root").Return(members, nil)

	stats, err := svc.ComputeStats(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 2, 2: 3, 3: 1}, stats.NetworkByLevel)
	assert.Equal(t, 3, stats.NetworkDepth)
}

func TestNetworkService_ComputeStats_ActiveWindow(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := service.NewNetworkService(userRepo)

	now := time.Now()
	members := []domain.NetworkMember{
		{ID: "fresh", Level: 1, LastOnline: now.Add(-time.Hour)},
		{ID: "week-old", Level: 1, LastOnline: now.Add(-6 * 24 * time.Hour)},
		{ID: "stale", Level: 1, LastOnline: now.Add(-8 * 24 * time.Hour)},
	}
	userRepo.On("ListNetwork", ctx, "root").Return(members, nil)

	stats, err := svc.ComputeStats(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ActiveUsers)
}

func TestNetworkService_ComputeStats_TopInviters(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := service.NewNetworkService(userRepo)

	now := time.Now()
	members := []domain.NetworkMember{
		{ID: "m1", Name: "One", Level: 1, LastOnline: now, SentInvites: 2},
		{ID: "m2", Name: "Two", Level: 1, LastOnline: now, SentInvites: 9},
		{ID: "m3", Name: "Three", Level: 2, LastOnline: now, SentInvites: 4},
		{ID: "m4", Name: "Four", Level: 2, LastOnline: now, SentInvites: 7},
		{ID: "m5", Name: "Five", Level: 2, LastOnline: now, SentInvites: 0},
		{ID: "m6", Name: "Six", Level: 3, LastOnline: now, SentInvites: 5},
	}
	userRepo.On("ListNetwork", ctx, "root").Return(members, nil)

	stats, err := svc.ComputeStats(ctx, "root")
	require.NoError(t, err)
	require.Len(t, stats.TopInviters, 5)
	assert.Equal(t, "m2", stats.TopInviters[0].ID)
	assert.Equal(t, 9, stats.TopInviters[0].Invitations)
	assert.Equal(t, "m4", stats.TopInviters[1].ID)
	assert.Equal(t, "m6", stats.TopInviters[2].ID)
	assert.Equal(t, "m3", stats.TopInviters[3].ID)
	assert.Equal(t, "m1", stats.TopInviters[4].ID)
	// m5 with zero invitations fell off the top five.
	for _, ti := range stats.TopInviters {
		assert.NotEqual(t, "m5", ti.ID)
	}
}
