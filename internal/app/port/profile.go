package port

import (
	"context"

	"portfolio_checker/internal/domain/entity"
)

// ProfileResolver defines the interface for the external profile resolution
// service. Implementations are specific to the upstream API (e.g. Neynar).
type ProfileResolver interface {
	// GetProfilesByAddress returns all profiles that have verified the given
	// wallet address. An unknown address yields an empty slice, not an error.
	GetProfilesByAddress(ctx context.Context, address string) ([]entity.Profile, error)

	// GetProfileByUsername returns the profile for a Farcaster username.
	GetProfileByUsername(ctx context.Context, username string) (*entity.Profile, error)

	// GetProfileByFID returns the profile for a numeric Farcaster ID.
	GetProfileByFID(ctx context.Context, fid uint64) (*entity.Profile, error)

	// GetProfilesByXUsername returns the profiles that verified the given
	// X username.
	GetProfilesByXUsername(ctx context.Context, xUsername string) ([]entity.Profile, error)
}

// ProfileService defines the interface for resolving an opaque account
// identifier (address, username, FID or X username) into matching profiles.
type ProfileService interface {
	ResolveProfiles(ctx context.Context, identifier string) ([]entity.Profile, error)
}
