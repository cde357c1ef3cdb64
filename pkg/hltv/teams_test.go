package hltv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubFetcher struct {
	html  string
	err   error
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	s.calls++
	return s.html, s.err
}

const teamsHTML = `
<table class="stats-table">
  <tr>
    <td class="teamCol-teams-overview"><a href="/stats/teams/4608/natus-vincere">Natus Vincere</a></td>
  </tr>
  <tr>
    <td class="teamCol-teams-overview"><a href="/stats/teams/6667/faze">FaZe</a></td>
  </tr>
</table>
`

func TestTeamDirectoryResolve(t *testing.T) {
	ex := newTestExtractor(t)
	fetcher := &stubFetcher{html: teamsHTML}
	dir := NewTeamDirectory(fetcher, ex)

	ctx := context.Background()
	assert.Equal(t, 4608, dir.Resolve(ctx, "Natus Vincere"))
	assert.Equal(t, 6667, dir.Resolve(ctx, "FaZe"))
	assert.Equal(t, 0, dir.Resolve(ctx, "Unknown Team"))

	// The directory is fetched once per run, not per lookup.
	assert.Equal(t, 1, fetcher.calls)
}

func TestTeamDirectoryFetchFailure(t *testing.T) {
	ex := newTestExtractor(t)
	fetcher := &stubFetcher{err: errors.New("solver down")}
	dir := NewTeamDirectory(fetcher, ex)

	ctx := context.Background()
	assert.Equal(t, 0, dir.Resolve(ctx, "Natus Vincere"))

	// A failed load is not retried within the run.
	dir.Resolve(ctx, "FaZe")
	assert.Equal(t, 1, fetcher.calls)
}
