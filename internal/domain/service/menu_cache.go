package service

import (
	"context"

	"playden/internal/domain/entity"
)

// MenuCache is a read-through cache for the menu catalog. The menu is
// read-heavy and changes only on admin edits, so lookups are served from cache
// and every write invalidates the whole catalog. Cache failures are logged by
// implementations and never surfaced to callers.
type MenuCache interface {
	// GetItems retrieves a cached listing. The second return is false on a miss.
	GetItems(ctx context.Context, category string, availableOnly bool) ([]*entity.MenuItem, bool)

	// SetItems stores a listing under its filter key.
	SetItems(ctx context.Context, category string, availableOnly bool, items []*entity.MenuItem)

	// Invalidate drops all cached listings.
	Invalidate(ctx context.Context)
}
