package cricket

import (
	"strings"
	"time"
)

const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
	StatusScheduled  = "Scheduled"
)

const (
	FormatTest = "TEST"
	FormatODI  = "ODI"
	FormatT20  = "T20"
	FormatT20I = "T20I"
)

const (
	Placeholder      = "-"
	DefaultTeam1     = "Team 1"
	DefaultTeam2     = "Team 2"
	DefaultVenue     = "TBD"
	StartTimeLayout  = "2006-01-02 15:04 UTC"
	ProviderDTLayout = "2006-01-02T15:04:05"
)

// RawMatch is one provider record as decoded from JSON. No key is guaranteed.
type RawMatch map[string]any

// Match is the normalized, provider-independent match record.
type Match struct {
	ID            int            `json:"id"`
	Team1         string         `json:"team1"`
	Team2         string         `json:"team2"`
	MatchFormat   string         `json:"match_format"`
	StartTime     string         `json:"start_time"`
	Venue         string         `json:"venue"`
	Status        string         `json:"status"`
	ScoreSummary  string         `json:"score_summary"`
	ManOfMatch    string         `json:"man_of_match"`
	ManOfSeries   string         `json:"man_of_series"`
	BestBatsman   string         `json:"best_batsman"`
	BestBowler    string         `json:"best_bowler"`
	SeriesName    string         `json:"series_name"`
	MatchNumber   string         `json:"match_number"`
	TossWinner    string         `json:"toss_winner"`
	TossDecision  string         `json:"toss_decision"`
	Umpires       string         `json:"umpires"`
	MatchReferee  string         `json:"match_referee"`
	MatchURL      string         `json:"match_url"`
	ScorecardURL  string         `json:"scorecard_url"`
	DetailedScore map[string]any `json:"detailed_score"`
}

// DeriveStatus maps provider status text and the started flag to a Match status.
func DeriveStatus(statusText string, started bool) string {
	switch {
	case strings.Contains(strings.ToLower(statusText), "won"):
		return StatusCompleted
	case started:
		return StatusInProgress
	default:
		return StatusScheduled
	}
}

// FormatStartTime renders the provider timestamp, or now when it does not match
// ProviderDTLayout exactly.
func FormatStartTime(raw string, now time.Time) string {
	parsed, err := time.Parse(ProviderDTLayout, raw)
	if err != nil || parsed.Format(ProviderDTLayout) != raw {
		parsed = now
	}
	return parsed.UTC().Format(StartTimeLayout)
}
