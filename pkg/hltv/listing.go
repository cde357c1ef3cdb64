package hltv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"hltvharvest/pkg/models"
)

// ExtractListing parses a results listing page into candidate match
// records. Records appear in document order; duplicates within a page
// are kept, deduplication is the session's job.
func (e *Extractor) ExtractListing(html string) ([]*models.Match, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, parseError("listing document")
	}

	holders := doc.Find("div.results-holder")
	if holders.Length() == 0 {
		return nil, parseError("results-holder")
	}

	var matches []*models.Match

	holders.Each(func(_ int, section *goquery.Selection) {
		// The headline carries the date shared by all results in the
		// section, e.g. "Results for September 28th 2025".
		date := ""
		if headline := section.Find("span.standard-headline").First(); headline.Length() > 0 {
			parsed, err := e.parseHeadlineDate(headline.Text())
			if err != nil {
				e.logger.WithError(err).Warn("failed to parse results headline date")
			} else {
				date = parsed
			}
		}

		section.Find("div.result-con").Each(func(_ int, res *goquery.Selection) {
			href, ok := res.Find("a.a-reset").First().Attr("href")
			if !ok {
				return
			}

			matchID := idFromHref(href)
			if matchID == 0 {
				return
			}

			match := &models.Match{
				MatchID: matchID,
				URL:     e.baseURL + href,
				Date:    date,
			}

			event := res.Find("td.event").First()
			if event.Length() == 0 {
				event = res.Find("td.placeholder-text-cell").First()
			}
			match.Event = strings.TrimSpace(event.Text())

			teams := res.Find("td.team-cell")
			if teams.Length() == 2 {
				match.Team1 = strings.TrimSpace(teams.Eq(0).Text())
				match.Team2 = strings.TrimSpace(teams.Eq(1).Text())

				scores := res.Find("td.result-score span")
				if scores.Length() >= 2 {
					match.Team1Score = toInt(scores.Eq(0).Text())
					match.Team2Score = toInt(scores.Eq(1).Text())
				}
			}

			matches = append(matches, match)
		})
	})

	return matches, nil
}

// parseHeadlineDate converts a section headline into a local YYYY-MM-DD
// date. HLTV renders the date in its cookie timezone with an ordinal
// day suffix.
func (e *Extractor) parseHeadlineDate(text string) (string, error) {
	text = strings.Replace(text, "Results for ", "", 1)
	// Stripping ordinal suffixes mangles "August" into "Augu"; the
	// month table below knows the mangled form.
	for _, suffix := range []string{"th", "rd", "st", "nd"} {
		text = strings.ReplaceAll(text, suffix, "")
	}

	parts := strings.Fields(text)
	if len(parts) != 3 {
		return "", fmt.Errorf("unexpected headline date: %q", text)
	}

	month, err := monthNumber(parts[0])
	if err != nil {
		return "", err
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid day in headline date: %q", parts[1])
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("invalid year in headline date: %q", parts[2])
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, e.hltvZone)
	return date.In(e.localZone).Format("2006-01-02"), nil
}

// monthNumber maps a (possibly suffix-mangled) month name to its number
func monthNumber(name string) (int, error) {
	if name == "Augu" {
		name = "August"
	}
	parsed, err := time.Parse("January", name)
	if err != nil {
		return 0, fmt.Errorf("invalid month in headline date: %q", name)
	}
	return int(parsed.Month()), nil
}

// idFromHref extracts the numeric match id from a result link, e.g.
// "/matches/2370727/team-a-vs-team-b" -> 2370727.
func idFromHref(href string) int {
	parts := strings.Split(href, "/")
	if len(parts) < 2 {
		return 0
	}
	return toInt(parts[len(parts)-2])
}

// toInt converts text to an int, returning 0 on failure
func toInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
