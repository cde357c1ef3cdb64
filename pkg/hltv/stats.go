package hltv

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hltvharvest/pkg/models"
)

// ExtractPlayerStats parses per-map scoreboards from a match page into
// a map name -> per-side stat lines mapping. A page without a stats
// block yields an empty mapping, not an error: older matches simply
// have no scoreboards.
func (e *Extractor) ExtractPlayerStats(html string) map[string]models.TeamPlayers {
	statsByMap := make(map[string]models.TeamPlayers)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return statsByMap
	}

	matchstats := doc.Find("div.matchstats").First()
	if matchstats.Length() == 0 {
		return statsByMap
	}

	var mapNames []string
	matchstats.Find(".stats-menu-link .dynamic-map-name-full").Each(func(_ int, tab *goquery.Selection) {
		name := strings.TrimSpace(tab.Text())
		if strings.ToLower(name) != "all maps" {
			mapNames = append(mapNames, name)
		}
	})

	tables := matchstats.Find("table.totalstats")

	// Tables 0 and 1 are the "All maps" aggregates; per-map tables
	// follow in tab order, two per map.
	tableIndex := 2

	for _, mapName := range mapNames {
		players := models.TeamPlayers{}

		for side := 0; side < 2; side++ {
			if tableIndex >= tables.Length() {
				break
			}

			table := tables.Eq(tableIndex)
			tableIndex++

			rows := parseStatsTable(table)
			if side == 0 {
				players.Team1 = rows
			} else {
				players.Team2 = rows
			}
		}

		statsByMap[mapName] = players
	}

	return statsByMap
}

// parseStatsTable reads one side's scoreboard rows, skipping the header
func parseStatsTable(table *goquery.Selection) []models.PlayerStat {
	var stats []models.PlayerStat

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}

		nick := row.Find("span.player-nick").First()
		if nick.Length() == 0 {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 9 {
			return
		}

		stats = append(stats, models.PlayerStat{
			Name:   strings.TrimSpace(nick.Text()),
			KD:     strings.TrimSpace(cells.Eq(1).Text()),
			ADR:    strings.TrimSpace(cells.Eq(4).Text()),
			KAST:   strings.TrimSpace(cells.Eq(6).Text()),
			Rating: strings.TrimSpace(cells.Eq(8).Text()),
		})
	})

	return stats
}
