// Package provider defines the per-mirror resolvers that turn a video ID
// into a complete media.VideoRecord.
package provider

import (
	"context"
	"fmt"

	"github.com/Tenakskd/ytserver-v2/internal/config"
	"github.com/Tenakskd/ytserver-v2/internal/media"
)

// Provider is the interface that mirror resolvers must implement.
type Provider interface {
	// Mirror returns the mirror this provider reads from.
	Mirror() media.Mirror

	// Resolve fetches upstream documents for videoID and extracts a fully
	// populated record. Failures are always *ResolveError.
	Resolve(ctx context.Context, videoID string) (*media.VideoRecord, error)
}

// FromConfig builds one provider per configured mirror.
func FromConfig(cfg *config.Config, opts ...Option) (map[media.Mirror]Provider, error) {
	variant, err := ParseVariant(cfg.S1.Variant)
	if err != nil {
		return nil, fmt.Errorf("s1 variant: %w", err)
	}

	return map[media.Mirror]Provider{
		media.S1: NewS1(cfg.S1.WatchURL, cfg.S1.APIURL, variant, opts...),
		media.S2: NewS2(cfg.S2.WatchURL, opts...),
	}, nil
}
