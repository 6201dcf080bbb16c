// Package cache holds the derived aggregate values served by the read
// endpoints. Every entry can be recomputed from the entity store.
package cache

import "context"

const (
	AnnouncementsKey   = "RECENT_ANNOUNCEMENTS"
	FeaturedSpeakerKey = "FEATURED_SPEAKER"
)

type Cache interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
