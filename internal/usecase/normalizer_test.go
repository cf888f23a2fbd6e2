package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-scores/internal/domain/cricket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 9, 45, 0, 0, time.UTC)

var startTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2} UTC$`)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(
		cricket.NewClassifier(cricket.DefaultKeywords()),
		NormalizerConfig{Now: func() time.Time { return fixedNow }},
		nil,
	)
}

func internationalRecord(team1, team2 string) cricket.RawMatch {
	return cricket.RawMatch{
		"matchType":   "odi",
		"name":        team1 + " vs " + team2 + ", 1st ODI",
		"series":      team2 + " tour of " + team1,
		"teams":       []any{team1, team2},
		"dateTimeGMT": "2024-03-15T14:30:00",
		"status":      "Match starts at 14:30 GMT",
	}
}

func TestNormalizer_FullRecord(t *testing.T) {
	t.Parallel()

	raw := cricket.RawMatch{
		"id":            "a1b2-c3",
		"matchType":     "t20i",
		"name":          "India vs England, 3rd T20I",
		"series":        "England tour of India, 2025",
		"teams":         []any{"India", "England"},
		"dateTimeGMT":   "2024-03-15T14:30:00",
		"venue":         "Wankhede Stadium, Mumbai",
		"status":        "India won by 7 wkts",
		"matchStarted":  true,
		"matchNumber":   float64(3),
		"tossWinner":    "England",
		"tossChoice":    "bat",
		"umpires":       []any{"Nitin Menon", "Chris Gaffaney"},
		"referee":       "Javagal Srinath",
		"manOfTheMatch": "Suryakumar Yadav",
		"mos":           "Jos Buttler",
		"players":       map[string]any{"topBatsman": "Suryakumar Yadav"},
		"score": []any{
			map[string]any{"inning": "England Inning 1", "r": float64(171), "w": float64(9), "o": float64(20), "topBowler": "Arshdeep Singh"},
			map[string]any{"inning": "India Inning 1", "r": float64(172), "w": float64(3), "o": 18.4},
		},
		"teamInfo": []any{map[string]any{"name": "India", "shortname": "IND"}},
	}

	got := newTestNormalizer().Normalize(context.Background(), []cricket.RawMatch{raw})
	require.Len(t, got, 1)

	m := got[0]
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, "India", m.Team1)
	assert.Equal(t, "England", m.Team2)
	assert.Equal(t, cricket.FormatT20I, m.MatchFormat)
	assert.Equal(t, "2024-03-15 14:30 UTC", m.StartTime)
	assert.Equal(t, "Wankhede Stadium, Mumbai", m.Venue)
	assert.Equal(t, cricket.StatusCompleted, m.Status)
	assert.Equal(t, "England Inning 1: 171/9 (20 ov) | India Inning 1: 172/3 (18.4 ov)", m.ScoreSummary)
	assert.Equal(t, "Suryakumar Yadav", m.ManOfMatch)
	assert.Equal(t, "Jos Buttler", m.ManOfSeries)
	assert.Equal(t, "Suryakumar Yadav", m.BestBatsman)
	assert.Equal(t, "Arshdeep Singh", m.BestBowler)
	assert.Equal(t, "England tour of India, 2025", m.SeriesName)
	assert.Equal(t, "3", m.MatchNumber)
	assert.Equal(t, "England", m.TossWinner)
	assert.Equal(t, "bat", m.TossDecision)
	assert.Equal(t, "Nitin Menon, Chris Gaffaney", m.Umpires)
	assert.Equal(t, "Javagal Srinath", m.MatchReferee)
	assert.Equal(t, "https://www.espncricinfo.com/matches/engine/match/a1b2-c3.html", m.ScorecardURL)
	assert.Equal(t, m.ScorecardURL, m.MatchURL)
	assert.Len(t, m.DetailedScore["innings"], 2)
	assert.Equal(t, []any{}, m.DetailedScore["scorecard"])
	assert.NotEmpty(t, m.DetailedScore["team_info"])
}

func TestNormalizer_DropsNonInternationalRecords(t *testing.T) {
	t.Parallel()

	records := []cricket.RawMatch{
		{"matchType": "list a", "teams": []any{"India A", "South Africa A"}},
		{"matchType": "T20", "name": "Lahore Qalandars vs Karachi Kings", "series": "Pakistan Super League 2025", "teams": []any{"Lahore Qalandars", "Karachi Kings"}},
		{"matchType": "test", "name": "Victoria vs New South Wales", "teams": []any{"Victoria", "New South Wales"}},
		internationalRecord("Sri Lanka", "Pakistan"),
	}

	got := newTestNormalizer().Normalize(context.Background(), records)
	require.Len(t, got, 1)
	assert.Equal(t, "Sri Lanka", got[0].Team1)
	assert.Equal(t, 4, got[0].ID)
}

func TestNormalizer_IDsUsePreFilterIndex(t *testing.T) {
	t.Parallel()

	records := []cricket.RawMatch{
		internationalRecord("India", "Australia"),
		{"matchType": "first-class"},
		internationalRecord("England", "West Indies"),
		{"matchType": "t20", "series": "Indian Premier League"},
		internationalRecord("Pakistan", "Zimbabwe"),
	}

	got := newTestNormalizer().Normalize(context.Background(), records)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, []string{"India", "England", "Pakistan"}, []string{got[0].Team1, got[1].Team1, got[2].Team1})
}

func TestNormalizer_Defaults(t *testing.T) {
	t.Parallel()

	got := newTestNormalizer().Normalize(context.Background(), []cricket.RawMatch{
		{"matchType": "Test", "teams": []any{"India"}, "dateTimeGMT": "not-a-date"},
	})
	require.Len(t, got, 1)

	m := got[0]
	assert.Equal(t, cricket.DefaultTeam1, m.Team1)
	assert.Equal(t, cricket.DefaultTeam2, m.Team2)
	assert.Equal(t, "TEST", m.MatchFormat)
	assert.Regexp(t, startTimePattern, m.StartTime)
	assert.Equal(t, "2026-10-18 09:45 UTC", m.StartTime)
	assert.Equal(t, cricket.DefaultVenue, m.Venue)
	assert.Equal(t, cricket.StatusScheduled, m.Status)
	assert.Equal(t, "Scheduled", m.ScoreSummary, "missing status text behaves as Scheduled")
	for name, value := range map[string]string{
		"man_of_match":  m.ManOfMatch,
		"man_of_series": m.ManOfSeries,
		"best_batsman":  m.BestBatsman,
		"best_bowler":   m.BestBowler,
		"series_name":   m.SeriesName,
		"match_number":  m.MatchNumber,
		"toss_winner":   m.TossWinner,
		"toss_decision": m.TossDecision,
		"umpires":       m.Umpires,
		"match_referee": m.MatchReferee,
	} {
		assert.Equalf(t, cricket.Placeholder, value, "expected placeholder for %s", name)
	}
	assert.Equal(t, "https://www.cricbuzz.com/live-cricket-scorecard/team-1-vs-team-2-test-2026-10-18", m.ScorecardURL)
	assert.Equal(t, m.ScorecardURL, m.MatchURL)
	assert.NotNil(t, m.DetailedScore)
	assert.Empty(t, m.DetailedScore)
}

func TestNormalizer_NowFallbackWithRealClock(t *testing.T) {
	t.Parallel()

	normalizer := NewNormalizer(nil, NormalizerConfig{}, nil)
	got := normalizer.Normalize(context.Background(), []cricket.RawMatch{{"matchType": "odi"}})
	require.Len(t, got, 1)
	assert.Regexp(t, startTimePattern, got[0].StartTime)
}

func TestNormalizer_ScoreSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    cricket.RawMatch
		expect string
	}{
		{
			name: "single innings",
			raw: cricket.RawMatch{"matchType": "odi", "score": []any{
				map[string]any{"inning": "India 1st", "r": float64(250), "w": float64(4), "o": 45.2},
			}},
			expect: "India 1st: 250/4 (45.2 ov)",
		},
		{
			name:   "no innings falls back to status",
			raw:    cricket.RawMatch{"matchType": "odi", "status": "Match delayed"},
			expect: "Match delayed",
		},
		{
			name:   "empty status falls back to placeholder",
			raw:    cricket.RawMatch{"matchType": "odi", "status": ""},
			expect: "-",
		},
		{
			name: "missing numbers default to zero",
			raw: cricket.RawMatch{"matchType": "odi", "score": []any{
				map[string]any{"r": float64(12)},
			}},
			expect: ": 12/0 (0 ov)",
		},
	}

	normalizer := newTestNormalizer()
	for _, tc := range tests {
		got := normalizer.Normalize(context.Background(), []cricket.RawMatch{tc.raw})
		require.Lenf(t, got, 1, tc.name)
		assert.Equalf(t, tc.expect, got[0].ScoreSummary, tc.name)
	}
}

func TestNormalizer_FractionalSecondsFallBackToNow(t *testing.T) {
	t.Parallel()

	got := newTestNormalizer().Normalize(context.Background(), []cricket.RawMatch{
		{"matchType": "odi", "dateTimeGMT": "2024-03-15T14:30:00.000"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "2026-10-18 09:45 UTC", got[0].StartTime)
}

func TestNormalizer_NumbersEchoedAsReceived(t *testing.T) {
	t.Parallel()

	payload := []byte(`[{"matchType":"odi","matchNumber":3.0,"score":[{"inning":"India 1st","r":250,"w":4,"o":50.0}]}]`)
	var records []cricket.RawMatch
	require.NoError(t, sonic.Config{UseNumber: true}.Froze().Unmarshal(payload, &records))

	got := newTestNormalizer().Normalize(context.Background(), records)
	require.Len(t, got, 1)
	assert.Equal(t, "India 1st: 250/4 (50.0 ov)", got[0].ScoreSummary)
	assert.Equal(t, "3.0", got[0].MatchNumber)

	encoded, err := sonic.ConfigStd.Marshal(got[0].DetailedScore)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"o":50.0`)
}

func TestNormalizer_StringsEchoedUntrimmed(t *testing.T) {
	t.Parallel()

	got := newTestNormalizer().Normalize(context.Background(), []cricket.RawMatch{
		{"matchType": "ODI", "teams": []any{" India ", "Australia"}, "venue": "Eden Gardens "},
		{"matchType": " odi ", "teams": []any{"India", "Australia"}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, " India ", got[0].Team1)
	assert.Equal(t, "Eden Gardens ", got[0].Venue)
}

func TestNormalizer_StatusDerivation(t *testing.T) {
	t.Parallel()

	normalizer := newTestNormalizer()
	got := normalizer.Normalize(context.Background(), []cricket.RawMatch{
		{"matchType": "odi", "status": "Australia won by 4 runs", "matchStarted": true},
		{"matchType": "odi", "status": "Innings break", "matchStarted": true},
		{"matchType": "odi", "status": "Starts tomorrow", "matchStarted": false},
	})
	require.Len(t, got, 3)
	assert.Equal(t, cricket.StatusCompleted, got[0].Status)
	assert.Equal(t, cricket.StatusInProgress, got[1].Status)
	assert.Equal(t, cricket.StatusScheduled, got[2].Status)
}

func TestNormalizer_FieldPriority(t *testing.T) {
	t.Parallel()

	got := newTestNormalizer().Normalize(context.Background(), []cricket.RawMatch{
		{
			"matchType":        "odi",
			"manOfTheMatch":    "",
			"mom":              "Second Choice",
			"playerOfTheMatch": "Third Choice",
			"players":          map[string]any{"bestBowler": "", "topBowler": "Players Bowler"},
			"score": []any{
				map[string]any{"inning": "A", "topBatsman": "Innings Batsman", "topBowler": "Innings Bowler"},
				map[string]any{"inning": "B", "topBatsman": "Second Innings Batsman"},
			},
			"scorecard_url": "https://example.com/scorecard/1",
			"match_url":     "https://example.com/match/1",
		},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Second Choice", got[0].ManOfMatch)
	assert.Equal(t, "Innings Batsman", got[0].BestBatsman)
	assert.Equal(t, "Players Bowler", got[0].BestBowler)
	assert.Equal(t, "https://example.com/scorecard/1", got[0].ScorecardURL)
	assert.Equal(t, "https://example.com/match/1", got[0].MatchURL)
}

func TestNormalizer_SlugURLUsesConfiguredBase(t *testing.T) {
	t.Parallel()

	normalizer := NewNormalizer(nil, NormalizerConfig{
		FallbackScorecardBaseURL: "https://scores.example.com/card/",
		Now:                      func() time.Time { return fixedNow },
	}, nil)

	got := normalizer.Normalize(context.Background(), []cricket.RawMatch{internationalRecord("New Zealand", "South Africa")})
	require.Len(t, got, 1)
	assert.Equal(t, "https://scores.example.com/card/new-zealand-vs-south-africa-odi-2024-03-15", got[0].ScorecardURL)
}

func TestNormalizer_Idempotent(t *testing.T) {
	t.Parallel()

	var records []cricket.RawMatch
	payload := []byte(`[
		{"id":"m-1","matchType":"test","name":"India vs Australia, 1st Test","series":"Australia tour of India","teams":["India","Australia"],"dateTimeGMT":"2024-03-15T14:30:00","status":"Day 1: Stumps","matchStarted":true,
		 "score":[{"inning":"India Inning 1","r":311,"w":6,"o":90}],"scorecard":[{"batting":[{"r":100}],"extras":{"r":9,"b":2}}],"teamInfo":[{"name":"India","img":"x"}]},
		{"matchType":"t20","series":"Big Bash League","teams":["Sydney Sixers","Hobart Hurricanes"]}
	]`)
	require.NoError(t, sonic.Unmarshal(payload, &records))

	normalizer := newTestNormalizer()
	first, err := sonic.ConfigStd.Marshal(normalizer.Normalize(context.Background(), records))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := sonic.ConfigStd.Marshal(normalizer.Normalize(context.Background(), records))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
