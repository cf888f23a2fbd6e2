package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cricket-scores/internal/platform/logging"
	"github.com/riskibarqy/cricket-scores/internal/usecase"
)

type Handler struct {
	matchService *usecase.MatchService
	pages        *Pages
	logger       *logging.Logger
}

func NewHandler(matchService *usecase.MatchService, pages *Pages, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if pages == nil {
		pages = MustDefaultPages()
	}

	return &Handler{
		matchService: matchService,
		pages:        pages,
		logger:       logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
