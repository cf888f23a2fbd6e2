package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/cricket-scores/external/cricapi"
	"github.com/riskibarqy/cricket-scores/internal/config"
	"github.com/riskibarqy/cricket-scores/internal/domain/cricket"
	"github.com/riskibarqy/cricket-scores/internal/interfaces/httpapi"
	"github.com/riskibarqy/cricket-scores/internal/platform/logging"
	"github.com/riskibarqy/cricket-scores/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	keywords, err := cricket.LoadKeywordsFile(cfg.KeywordsFile)
	if err != nil {
		return nil, fmt.Errorf("load classifier keywords: %w", err)
	}

	pages, err := httpapi.NewPages(httpapi.PagesConfig{
		TemplatesDir: cfg.TemplatesDir,
		StaticDir:    cfg.StaticDir,
	})
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}

	provider := cricapi.NewClient(cricapi.ClientConfig{
		BaseURL: cfg.CricAPIBaseURL,
		APIKey:  cfg.CricAPIKey,
		Timeout: cfg.CricAPITimeout,
		Logger:  logger.Named("cricapi"),
	})
	if cfg.CricAPIKey == "" {
		logger.Warn("CRICAPI_KEY is empty, provider requests will be rejected")
	}

	normalizer := usecase.NewNormalizer(
		cricket.NewClassifier(keywords),
		usecase.NormalizerConfig{
			ScorecardURLTemplate:     cfg.ScorecardURLTemplate,
			FallbackScorecardBaseURL: cfg.FallbackScorecardBaseURL,
		},
		logger,
	)
	matchSvc := usecase.NewMatchService(provider, normalizer, logger)

	handler := httpapi.NewHandler(matchSvc, pages, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	logger.Info("classifier keywords loaded",
		"source", keywordsSource(cfg.KeywordsFile),
		"domestic_terms", len(cricket.Terms(keywords.DomesticLeagues)),
		"sub_national_terms", len(cricket.Terms(keywords.SubNationalTeams)),
	)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     logger.StdLog(logging.LevelWarn),
	}, nil
}

func keywordsSource(path string) string {
	if strings.TrimSpace(path) == "" {
		return "embedded"
	}
	return path
}
