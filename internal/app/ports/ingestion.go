package ports

import (
	"context"
)

// FeedFetcher retrieves and decodes one remote JSON document.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (any, error)
}

// FeedSource is one remote feed and the platform label its entries belong to.
type FeedSource struct {
	Platform string
	URL      string
}
