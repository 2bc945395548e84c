package collectors

import (
	"context"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
	"github.com/openclaw-hq/claw-digest/pkg/httpclient"
)

// Collector fetches new content items from one external source.
// Concrete implementations live in source-specific files (e.g., hackernews.go).
type Collector interface {
	// Name identifies the collector; it is also the routing key for sections.
	Name() string
	// Available reports whether the collector can run, i.e. its required
	// credentials are configured. Collectors without credentials return true.
	Available() bool
	// Collect fetches items, skipping ids already present in the store.
	Collect(ctx context.Context, st state.Store) ([]domain.Item, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within collectors.
type HTTPClient = httpclient.Client
