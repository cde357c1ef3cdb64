package models

import "strconv"

// Match is a single harvested match result. Core fields come from the
// results listing; Format, Stage, Veto and Maps are filled in by the
// enrichment pass. JSON field names mirror the persisted results file.
type Match struct {
	MatchID    int    `json:"match-id"`
	URL        string `json:"url"`
	Date       string `json:"date,omitempty"`
	Event      string `json:"event"`
	Team1      string `json:"team1,omitempty"`
	Team2      string `json:"team2,omitempty"`
	Team1ID    int    `json:"team1-id,omitempty"`
	Team2ID    int    `json:"team2-id,omitempty"`
	Team1Score int    `json:"team1score"`
	Team2Score int    `json:"team2score"`

	Format string      `json:"format,omitempty"`
	Stage  string      `json:"stage,omitempty"`
	Veto   []string    `json:"veto,omitempty"`
	Maps   []MapResult `json:"maps,omitempty"`

	EnrichFailed bool `json:"enrich_failed,omitempty"`
}

// ID returns the stable identity key used for deduplication and for
// the checkpoint's enriched set.
func (m *Match) ID() string {
	return strconv.Itoa(m.MatchID)
}

// Detail holds the fields extracted from a match detail page.
type Detail struct {
	Format string
	Stage  string
	Veto   []string
	Maps   []MapResult
}

// MapResult is the outcome of a single map within a match.
type MapResult struct {
	Map        string        `json:"map"`
	Team1      MapTeamResult `json:"team1"`
	Team2      MapTeamResult `json:"team2"`
	HalfScores string        `json:"half_scores"`
	Status     string        `json:"status"` // "played" or "not_played"
	Players    TeamPlayers   `json:"players"`
}

// MapTeamResult is one side's result on a single map.
type MapTeamResult struct {
	Name   string `json:"name"`
	Score  string `json:"score"`
	Status string `json:"status"` // "won" or "lost"
}

// PlayerStat is a single player's line on a map scoreboard.
type PlayerStat struct {
	Name   string `json:"name"`
	KD     string `json:"kd"`
	ADR    string `json:"adr"`
	KAST   string `json:"kast"`
	Rating string `json:"rating"`
}

// TeamPlayers groups scoreboard lines by side.
type TeamPlayers struct {
	Team1 []PlayerStat `json:"team1"`
	Team2 []PlayerStat `json:"team2"`
}

// Team is an entry in the team directory used to resolve team names
// to their numeric ids.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
