package services

import (
	"context"
	"errors"
	"time"

	"messaging-service/internal/models"
	"messaging-service/internal/repositories/postgres"
	"messaging-service/pkg/logger"
)

const displayNameTTL = 10 * time.Minute

// ProfileService resolves display names for typing notices. Names are read
// through a Redis cache when one is configured.
type ProfileService struct {
	profiles *postgres.ProfileRepository
	cache    *RedisService
}

func NewProfileService(profiles *postgres.ProfileRepository, cache *RedisService) *ProfileService {
	return &ProfileService{profiles: profiles, cache: cache}
}

func displayNameKey(userID string) string {
	return "profile:" + userID + ":display_name"
}

// DisplayName returns "<first> <last>" for userID, or models.ErrRecordNotFound
// when the user has no profile.
func (s *ProfileService) DisplayName(ctx context.Context, userID string) (string, error) {
	if s.cache != nil {
		var name string
		err := s.cache.Get(ctx, displayNameKey(userID), &name)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			lg := logger.Ctx(ctx)
			lg.Debug().Err(err).Str(logger.FieldUserID, userID).Msg("display name cache read failed")
		}
	}

	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	name := p.DisplayName()
	if name == "" {
		return "", models.ErrRecordNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, displayNameKey(userID), name, displayNameTTL); err != nil {
			lg := logger.Ctx(ctx)
			lg.Debug().Err(err).Str(logger.FieldUserID, userID).Msg("display name cache write failed")
		}
	}
	return name, nil
}
