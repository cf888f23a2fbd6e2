package cricket

import "strings"

type ExclusionReason string

const (
	ExcludedFormat          ExclusionReason = "non_international_format"
	ExcludedDomesticLeague  ExclusionReason = "domestic_league"
	ExcludedSubNationalTeam ExclusionReason = "sub_national_team"
)

// Exclusion explains why a record was dropped.
type Exclusion struct {
	Reason ExclusionReason
	Term   string
}

var internationalFormats = map[string]struct{}{
	"test": {},
	"odi":  {},
	"t20":  {},
	"t20i": {},
}

// IsInternationalFormat reports whether matchType is Test, ODI, T20 or T20I.
func IsInternationalFormat(matchType string) bool {
	_, ok := internationalFormats[strings.ToLower(matchType)]
	return ok
}

// ContainsAnyTerm returns the first term found as a substring of any field.
// Terms are expected in lower case.
func ContainsAnyTerm(terms []string, fields ...string) (string, bool) {
	lowered := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(field))
	}
	if len(lowered) == 0 {
		return "", false
	}

	for _, term := range terms {
		if term == "" {
			continue
		}
		for _, field := range lowered {
			if strings.Contains(field, term) {
				return term, true
			}
		}
	}
	return "", false
}

// Classifier separates international fixtures from domestic ones.
type Classifier struct {
	domesticTerms    []string
	subNationalTerms []string
}

func NewClassifier(keywords Keywords) *Classifier {
	return &Classifier{
		domesticTerms:    Terms(keywords.DomesticLeagues),
		subNationalTerms: Terms(keywords.SubNationalTeams),
	}
}

// Exclusion reports whether raw must be dropped from the feed, and why.
func (c *Classifier) Exclusion(raw RawMatch) (Exclusion, bool) {
	if !IsInternationalFormat(raw.String("matchType")) {
		return Exclusion{Reason: ExcludedFormat, Term: raw.String("matchType")}, true
	}

	if term, ok := ContainsAnyTerm(c.domesticTerms, raw.String("name"), raw.String("series")); ok {
		return Exclusion{Reason: ExcludedDomesticLeague, Term: term}, true
	}

	teams := raw.Teams()
	if len(teams) > 2 {
		teams = teams[:2]
	}
	if term, ok := ContainsAnyTerm(c.subNationalTerms, teams...); ok {
		return Exclusion{Reason: ExcludedSubNationalTeam, Term: term}, true
	}

	return Exclusion{}, false
}

// IsInternational is Exclusion without the reason.
func (c *Classifier) IsInternational(raw RawMatch) bool {
	_, excluded := c.Exclusion(raw)
	return !excluded
}
