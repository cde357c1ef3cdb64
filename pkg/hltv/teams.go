package hltv

import (
	"context"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"hltvharvest/pkg/models"
)

// Fetcher retrieves a rendered document for a url
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// TeamDirectory resolves team names to their numeric ids. The listing
// is fetched lazily on first use and cached for the rest of the run.
// The directory is owned by the harvest session and passed by
// reference to whichever phase needs it.
type TeamDirectory struct {
	fetcher   Fetcher
	extractor *Extractor
	teams     []models.Team
	loaded    bool
	mu        sync.Mutex
}

// NewTeamDirectory creates an unloaded team directory
func NewTeamDirectory(fetcher Fetcher, extractor *Extractor) *TeamDirectory {
	return &TeamDirectory{
		fetcher:   fetcher,
		extractor: extractor,
	}
}

// Resolve returns the id for a team name, or 0 when unknown. A failed
// directory fetch is logged and leaves the directory empty for this
// run; resolution misses are never errors.
func (d *TeamDirectory) Resolve(ctx context.Context, name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		d.load(ctx)
	}

	for _, team := range d.teams {
		if team.Name == name {
			return team.ID
		}
	}
	return 0
}

// load fetches and parses the team overview page once per run
func (d *TeamDirectory) load(ctx context.Context) {
	d.loaded = true

	html, err := d.fetcher.Fetch(ctx, d.extractor.TeamStatsURL())
	if err != nil {
		d.extractor.logger.WithError(err).Warn("failed to fetch team directory")
		return
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		d.extractor.logger.WithError(err).Warn("failed to parse team directory")
		return
	}

	doc.Find("td.teamCol-teams-overview").Each(func(_ int, cell *goquery.Selection) {
		link := cell.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		id := idFromHref(href)
		if id == 0 {
			return
		}
		d.teams = append(d.teams, models.Team{
			ID:   id,
			Name: strings.TrimSpace(link.Text()),
		})
	})

	d.extractor.logger.WithField("teams", len(d.teams)).Debug("team directory loaded")
}
