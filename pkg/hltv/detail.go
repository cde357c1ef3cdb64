package hltv

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hltvharvest/pkg/models"
)

// ExtractDetail parses a match page into detail fields: match format,
// event stage, the veto sequence and per-map results. A page without
// the maps column is a parse-shape failure.
func (e *Extractor) ExtractDetail(html string) (*models.Detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, parseError("detail document")
	}

	mapsSection := doc.Find("div.col-6.col-7-small").First()
	if mapsSection.Length() == 0 {
		return nil, parseError("maps section")
	}

	detail := &models.Detail{}

	formatBoxes := mapsSection.Find("div.standard-box.veto-box")

	formatBoxes.Each(func(_ int, box *goquery.Selection) {
		formatText := box.Find("div.padding.preformatted-text").First()
		if formatText.Length() == 0 {
			return
		}
		var lines []string
		for _, line := range strings.Split(formatText.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			detail.Format = lines[0]
		}
		if len(lines) > 1 {
			detail.Stage = strings.TrimSpace(strings.TrimLeft(lines[1], "* "))
		}
	})

	formatBoxes.EachWithBreak(func(_ int, box *goquery.Selection) bool {
		vetoDiv := box.Find("div.padding").First()
		if vetoDiv.Length() == 0 {
			return true
		}
		vetoText := strings.ToLower(vetoDiv.Text())
		if !strings.Contains(vetoText, "removed") &&
			!strings.Contains(vetoText, "picked") &&
			!strings.Contains(vetoText, "was left over") {
			return true
		}
		vetoDiv.Find("div").Each(func(_ int, step *goquery.Selection) {
			if text := strings.TrimSpace(step.Text()); text != "" {
				detail.Veto = append(detail.Veto, text)
			}
		})
		return false
	})

	mapsSection.Find("div.mapholder").Each(func(_ int, holder *goquery.Selection) {
		mapName := "Unknown"
		if nameDiv := holder.Find("div.mapname").First(); nameDiv.Length() > 0 {
			mapName = strings.TrimSpace(nameDiv.Text())
		}

		results := holder.Find("div.results").First()
		if results.Length() == 0 {
			return
		}

		team1 := results.Find("div.results-left").First()
		team2 := results.Find("span.results-right").First()
		halfScores := strings.TrimSpace(results.Find("div.results-center-half-score").First().Text())

		status := "not_played"
		if halfScores != "" {
			status = "played"
		}

		detail.Maps = append(detail.Maps, models.MapResult{
			Map:        mapName,
			Team1:      parseMapTeam(team1),
			Team2:      parseMapTeam(team2),
			HalfScores: halfScores,
			Status:     status,
		})
	})

	return detail, nil
}

// parseMapTeam parses one side's name, score and won/lost status
func parseMapTeam(team *goquery.Selection) models.MapTeamResult {
	result := models.MapTeamResult{
		Name:   strings.TrimSpace(team.Find("div.results-teamname").First().Text()),
		Score:  strings.TrimSpace(team.Find("div.results-team-score").First().Text()),
		Status: "lost",
	}
	if class, ok := team.Attr("class"); ok && strings.Contains(class, "won") {
		result.Status = "won"
	}
	return result
}
