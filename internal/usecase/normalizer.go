package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-scores/internal/domain/cricket"
	"github.com/riskibarqy/cricket-scores/internal/platform/logging"
)

const (
	DefaultScorecardURLTemplate     = "https://www.espncricinfo.com/matches/engine/match/{id}.html"
	DefaultFallbackScorecardBaseURL = "https://www.cricbuzz.com/live-cricket-scorecard"
)

type NormalizerConfig struct {
	// ScorecardURLTemplate builds a scorecard link from the provider match id ({id}).
	ScorecardURLTemplate string
	// FallbackScorecardBaseURL prefixes the slug link used when no id is known.
	FallbackScorecardBaseURL string
	Now                      func() time.Time
}

// Normalizer filters provider records down to international fixtures and maps
// them into cricket.Match.
type Normalizer struct {
	classifier           *cricket.Classifier
	scorecardURLTemplate string
	fallbackBaseURL      string
	now                  func() time.Time
	logger               *logging.Logger
}

func NewNormalizer(classifier *cricket.Classifier, cfg NormalizerConfig, logger *logging.Logger) *Normalizer {
	if classifier == nil {
		classifier = cricket.NewClassifier(cricket.DefaultKeywords())
	}
	if logger == nil {
		logger = logging.Default()
	}

	template := strings.TrimSpace(cfg.ScorecardURLTemplate)
	if template == "" {
		template = DefaultScorecardURLTemplate
	}
	fallback := strings.TrimRight(strings.TrimSpace(cfg.FallbackScorecardBaseURL), "/")
	if fallback == "" {
		fallback = DefaultFallbackScorecardBaseURL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Normalizer{
		classifier:           classifier,
		scorecardURLTemplate: template,
		fallbackBaseURL:      fallback,
		now:                  now,
		logger:               logger,
	}
}

// Normalize keeps provider order. IDs are provider index + 1, counted before
// filtering, so they may have gaps.
func (n *Normalizer) Normalize(ctx context.Context, records []cricket.RawMatch) []cricket.Match {
	ctx, span := startUsecaseSpan(ctx, "usecase.Normalizer.Normalize")
	defer span.End()

	now := n.now().UTC()
	out := make([]cricket.Match, 0, len(records))
	for idx, raw := range records {
		if exclusion, excluded := n.classifier.Exclusion(raw); excluded {
			n.logger.DebugContext(ctx, "match excluded",
				"index", idx,
				"name", raw.String("name"),
				"reason", string(exclusion.Reason),
				"term", exclusion.Term,
			)
			continue
		}
		out = append(out, n.normalizeOne(idx+1, raw, now))
	}

	n.logger.DebugContext(ctx, "matches normalized", "received", len(records), "kept", len(out))
	return out
}

func (n *Normalizer) normalizeOne(id int, raw cricket.RawMatch, now time.Time) cricket.Match {
	team1, team2 := cricket.DefaultTeam1, cricket.DefaultTeam2
	if teams := raw.Teams(); len(teams) >= 2 {
		team1, team2 = teams[0], teams[1]
	}

	statusText := cricket.StatusScheduled
	if raw.Has("status") {
		statusText = raw.String("status")
	}

	format := strings.ToUpper(raw.String("matchType"))
	startTime := cricket.FormatStartTime(raw.String("dateTimeGMT"), now)

	players := raw.Map("players")
	innings := raw.Innings()

	scorecardURL := firstOf(
		field(raw, "scorecardUrl"),
		field(raw, "scorecard_url"),
		n.idScorecardURL(raw),
		n.slugScorecardURL(team1, team2, format, startTime),
	)
	matchURL := firstOf(
		field(raw, "matchUrl"),
		field(raw, "match_url"),
		field(raw, "url"),
		constant(scorecardURL),
	)

	return cricket.Match{
		ID:           id,
		Team1:        team1,
		Team2:        team2,
		MatchFormat:  format,
		StartTime:    startTime,
		Venue:        orDefault(raw.String("venue"), cricket.DefaultVenue),
		Status:       cricket.DeriveStatus(statusText, raw.Bool("matchStarted")),
		ScoreSummary: scoreSummary(innings, statusText),
		ManOfMatch: firstOf(
			field(raw, "manOfTheMatch"),
			field(raw, "mom"),
			field(raw, "playerOfTheMatch"),
		),
		ManOfSeries: firstOf(
			field(raw, "manOfTheSeries"),
			field(raw, "mos"),
			field(raw, "playerOfTheSeries"),
		),
		BestBatsman: firstOf(
			field(players, "bestBatsman"),
			field(players, "topBatsman"),
			inningsField(innings, "topBatsman"),
		),
		BestBowler: firstOf(
			field(players, "bestBowler"),
			field(players, "topBowler"),
			inningsField(innings, "topBowler"),
		),
		SeriesName:    firstOf(field(raw, "series")),
		MatchNumber:   firstOf(field(raw, "matchNumber")),
		TossWinner:    firstOf(field(raw, "tossWinner")),
		TossDecision:  firstOf(field(raw, "tossChoice")),
		Umpires:       firstOf(field(raw, "umpires")),
		MatchReferee:  firstOf(field(raw, "referee")),
		MatchURL:      matchURL,
		ScorecardURL:  scorecardURL,
		DetailedScore: detailedScore(raw, innings),
	}
}

func (n *Normalizer) idScorecardURL(raw cricket.RawMatch) accessor {
	return func() string {
		id := raw.String("id")
		if id == "" {
			return ""
		}
		return strings.ReplaceAll(n.scorecardURLTemplate, "{id}", url.PathEscape(id))
	}
}

func (n *Normalizer) slugScorecardURL(team1, team2, format, startTime string) accessor {
	return func() string {
		date := startTime
		if len(date) >= len("2006-01-02") {
			date = date[:len("2006-01-02")]
		}
		return fmt.Sprintf("%s/%s-vs-%s-%s-%s",
			n.fallbackBaseURL,
			slug(team1),
			slug(team2),
			strings.ToLower(format),
			date,
		)
	}
}

func scoreSummary(innings []map[string]any, statusText string) string {
	if len(innings) == 0 {
		return orDefault(statusText, cricket.Placeholder)
	}

	parts := make([]string, 0, len(innings))
	for _, entry := range innings {
		parts = append(parts, fmt.Sprintf("%s: %s/%s (%s ov)",
			cricket.Stringify(entry["inning"]),
			numberOrZero(entry["r"]),
			numberOrZero(entry["w"]),
			numberOrZero(entry["o"]),
		))
	}
	return strings.Join(parts, " | ")
}

func detailedScore(raw cricket.RawMatch, innings []map[string]any) map[string]any {
	if len(innings) == 0 {
		return map[string]any{}
	}
	return map[string]any{
		"innings":   innings,
		"scorecard": orEmptyList(raw["scorecard"]),
		"team_info": orEmptyList(raw["teamInfo"]),
	}
}

// accessor yields one candidate value; "" means absent.
type accessor func() string

// firstOf returns the first non-empty accessor result, or the placeholder.
func firstOf(accessors ...accessor) string {
	for _, get := range accessors {
		if get == nil {
			continue
		}
		if value := get(); value != "" {
			return value
		}
	}
	return cricket.Placeholder
}

func field(src map[string]any, key string) accessor {
	return func() string {
		if src == nil {
			return ""
		}
		return cricket.Stringify(src[key])
	}
}

func inningsField(innings []map[string]any, key string) accessor {
	return func() string {
		if len(innings) == 0 {
			return ""
		}
		return cricket.Stringify(innings[0][key])
	}
}

func constant(value string) accessor {
	return func() string { return value }
}

func numberOrZero(value any) string {
	if s := cricket.Stringify(value); s != "" {
		return s
	}
	return "0"
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func orEmptyList(value any) any {
	if value == nil {
		return []any{}
	}
	return value
}

func slug(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "-")
}
