package harvest

import (
	"context"

	"hltvharvest/pkg/models"
)

// Fetcher retrieves a rendered document for a url. The fetch client
// owns its own retry loop; a returned error means retries are
// exhausted.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor turns fetched documents into records. The session never
// inspects documents itself.
type Extractor interface {
	ListingURL(offset int) string
	ExtractListing(html string) ([]*models.Match, error)
	ExtractDetail(html string) (*models.Detail, error)
	ExtractPlayerStats(html string) map[string]models.TeamPlayers
}

// TeamResolver resolves a team name to its numeric id, 0 when unknown
type TeamResolver interface {
	Resolve(ctx context.Context, name string) int
}
