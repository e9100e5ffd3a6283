package ports

import (
	"context"
)

// TrackSource resolves a track URL into a playable stream descriptor.
type TrackSource interface {
	// Validate reports whether the URL is well-formed enough to attempt
	// resolution. It performs no network access.
	Validate(url string) bool

	// Resolve turns the URL into a playable track, or fails.
	Resolve(ctx context.Context, url string) (*TrackInfo, error)
}
