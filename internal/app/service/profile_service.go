package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"portfolio_checker/internal/app/port"
	"portfolio_checker/internal/domain/entity"
	"portfolio_checker/internal/pkg/metrics"
)

// ProfileServiceImpl implements port.ProfileService: it classifies the raw
// identifier, dispatches to the matching resolver lookup and caches results.
type ProfileServiceImpl struct {
	resolver port.ProfileResolver
	logger   port.Logger
	cache    *gocache.Cache
}

// NewProfileService creates a new ProfileServiceImpl.
func NewProfileService(resolver port.ProfileResolver, l port.Logger, cacheTTL, cleanupInterval time.Duration) port.ProfileService {
	return &ProfileServiceImpl{
		resolver: resolver,
		logger:   l,
		cache:    gocache.New(cacheTTL, cleanupInterval),
	}
}

// ResolveProfiles resolves an account identifier to zero or more profiles. An
// identifier that matches nothing yields an empty slice; errors are reserved
// for upstream failures.
func (s *ProfileServiceImpl) ResolveProfiles(ctx context.Context, identifier string) ([]entity.Profile, error) {
	value, kind := ClassifyIdentifier(identifier)
	if kind == IdentifierUnknown {
		return nil, fmt.Errorf("unrecognized account identifier %q", identifier)
	}

	cacheKey := kind.String() + ":" + value
	if cached, found := s.cache.Get(cacheKey); found {
		metrics.CacheEventsTotal.WithLabelValues("profiles", "hit").Inc()
		s.logger.Debug("Profile cache hit", "key", cacheKey)
		return cached.([]entity.Profile), nil
	}
	metrics.CacheEventsTotal.WithLabelValues("profiles", "miss").Inc()

	profiles, err := s.lookup(ctx, value, kind)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []entity.Profile{}
	}

	s.cache.Set(cacheKey, profiles, gocache.DefaultExpiration)
	s.logger.Debug("Resolved profiles", "identifier", value, "kind", kind.String(), "count", len(profiles))
	return profiles, nil
}

func (s *ProfileServiceImpl) lookup(ctx context.Context, value string, kind IdentifierKind) ([]entity.Profile, error) {
	switch kind {
	case IdentifierAddress:
		return s.resolver.GetProfilesByAddress(ctx, value)

	case IdentifierFID:
		fid, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid fid %q: %w", value, err)
		}
		profile, err := s.resolver.GetProfileByFID(ctx, fid)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, nil
		}
		return []entity.Profile{*profile}, nil

	case IdentifierUsername:
		profile, err := s.resolver.GetProfileByUsername(ctx, value)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, nil
		}
		return []entity.Profile{*profile}, nil

	case IdentifierXUsername:
		return s.resolver.GetProfilesByXUsername(ctx, value)

	default:
		return nil, fmt.Errorf("unsupported identifier kind %d", kind)
	}
}
