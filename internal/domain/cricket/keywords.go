package cricket

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywordsYAML []byte

// Keywords holds the exclusion terms, grouped by category.
type Keywords struct {
	DomesticLeagues  map[string][]string `yaml:"domestic_leagues" validate:"required,min=1,dive,keys,required,endkeys,required,min=1,dive,required"`
	SubNationalTeams map[string][]string `yaml:"sub_national_teams" validate:"required,min=1,dive,keys,required,endkeys,required,min=1,dive,required"`
}

var keywordsValidator = validator.New()

// DefaultKeywords returns the built-in keyword sets.
func DefaultKeywords() Keywords {
	keywords, err := ParseKeywords(defaultKeywordsYAML)
	if err != nil {
		panic(crerr.Wrap(err, "embedded keywords.yaml"))
	}
	return keywords
}

// LoadKeywordsFile reads keyword sets from a YAML file. An empty path yields the defaults.
func LoadKeywordsFile(path string) (Keywords, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultKeywords(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, crerr.Wrapf(err, "read keywords file %q", path)
	}
	keywords, err := ParseKeywords(raw)
	if err != nil {
		return Keywords{}, crerr.Wrapf(err, "keywords file %q", path)
	}
	return keywords, nil
}

// ParseKeywords decodes, normalizes and validates keyword YAML.
func ParseKeywords(raw []byte) (Keywords, error) {
	var keywords Keywords
	if err := yaml.Unmarshal(raw, &keywords); err != nil {
		return Keywords{}, crerr.Wrap(err, "decode keywords yaml")
	}

	keywords.DomesticLeagues = normalizeCategories(keywords.DomesticLeagues)
	keywords.SubNationalTeams = normalizeCategories(keywords.SubNationalTeams)

	if err := keywordsValidator.Struct(keywords); err != nil {
		return Keywords{}, crerr.Wrap(err, "validate keywords")
	}
	return keywords, nil
}

// Terms flattens categories into a sorted, de-duplicated list.
func Terms(categories map[string][]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, terms := range categories {
		for _, term := range terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	sort.Strings(out)
	return out
}

func normalizeCategories(categories map[string][]string) map[string][]string {
	if categories == nil {
		return nil
	}
	out := make(map[string][]string, len(categories))
	for category, terms := range categories {
		normalized := make([]string, 0, len(terms))
		for _, term := range terms {
			normalized = append(normalized, strings.ToLower(strings.TrimSpace(term)))
		}
		out[strings.TrimSpace(category)] = normalized
	}
	return out
}
