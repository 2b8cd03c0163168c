package service

import (
	"context"
	"sort"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/repository"
)

// activeWindow is the recency window for counting a member as active.
const activeWindow = 7 * 24 * time.Hour

// maxTopInviters caps the leaderboard in the stats snapshot.
const maxTopInviters = 5

type networkService struct {
	userRepo repository.UserRepository
}

func NewNetworkService(userRepo repository.UserRepository) NetworkService {
	return &networkService{userRepo: userRepo}
}

// ComputeStats aggregates the referral subtree below the given user. The
// queried user is not part of their own network: the fetched set is their
// proper descendants. The read is non-locking, so the snapshot may be
// stale the moment it is returned; it is for display, not for decisions.
func (s *networkService) ComputeStats(ctx context.Context, userID string) (*domain.NetworkStats, error) {
	members, err := s.userRepo.ListNetwork(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.NetworkStats{
		NetworkSize:    len(members),
		NetworkByLevel: make(map[int]int),
		TopInviters:    []domain.TopInviter{},
	}
	if len(members) == 0 {
		return stats, nil
	}

	now := time.Now()
	totalInvites := 0
	for _, m := range members {
		stats.NetworkByLevel[m.Level]++
		if m.Level > stats.NetworkDepth {
			stats.NetworkDepth = m.Level
		}
		if now.Sub(m.LastOnline) < activeWindow {
			stats.ActiveUsers++
		}
		totalInvites += m.SentInvites
	}
	stats.ViralCoefficient = float64(totalInvites) / float64(len(members))

	sorted := make([]domain.NetworkMember, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentInvites > sorted[j].SentInvites
	})
	if len(sorted) > maxTopInviters {
		sorted = sorted[:maxTopInviters]
	}
	for _, m := range sorted {
		stats.TopInviters = append(stats.TopInviters, domain.TopInviter{
			ID:          m.ID,
			Name:        m.Name,
			Invitations: m.SentInvites,
			Level:       m.Level,
		})
	}

	return stats, nil
}
