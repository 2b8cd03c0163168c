package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/geo"
	"vibe-backend/internal/repository"
)

type userService struct {
	userRepo  repository.UserRepository
	radiusKm  float64
	freshness time.Duration
}

func NewUserService(userRepo repository.UserRepository, radiusKm float64, freshness time.Duration) UserService {
	return &userService{
		userRepo:  userRepo,
		radiusKm:  radiusKm,
		freshness: freshness,
	}
}

func (s *userService) UpdateLocation(ctx context.Context, userID string, lat, lng float64) error {
	if !geo.ValidCoordinates(lat, lng) {
		return fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	return s.userRepo.UpdateLocation(ctx, userID, lat, lng, time.Now())
}

// Nearby returns other users with a fresh location within the configured
// radius of the query point, closest first.
func (s *userService) Nearby(ctx context.Context, userID string, lat, lng float64) ([]domain.NearbyUser, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}

	candidates, err := s.userRepo.ListWithFreshLocation(ctx, userID, time.Now().Add(-s.freshness))
	if err != nil {
		return nil, err
	}

	nearby := []domain.NearbyUser{}
	for _, u := range candidates {
		if u.Latitude == nil || u.Longitude == nil {
			continue
		}
		d := geo.DistanceKm(lat, lng, *u.Latitude, *u.Longitude)
		if d > s.radiusKm {
			continue
		}
		profiles, err := s.userRepo.ListProfiles(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		nearby = append(nearby, domain.NearbyUser{
			ID:         u.ID,
			Profiles:   profiles,
			DistanceKm: d,
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	return nearby, nil
}
