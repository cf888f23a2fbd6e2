package httpapi

import (
	"errors"
	"net/http"

	"github.com/riskibarqy/cricket-scores/internal/usecase"
)

// ListCurrentMatches always answers 200 with a JSON array. Upstream failures
// yield [] and the X-Upstream-Status header.
func (h *Handler) ListCurrentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCurrentMatches")
	defer span.End()

	matches, err := h.matchService.ListCurrentMatches(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrDependencyUnavailable) {
			w.Header().Set(upstreamStatusHeader, upstreamUnavailable)
		}
		h.logger.WarnContext(ctx, "list current matches failed, serving empty feed", "error", err)
	}

	writeJSON(ctx, w, http.StatusOK, matches)
}

type debugErrorDTO struct {
	Error string `json:"error"`
}

// DebugRaw passes the provider body through untouched.
func (h *Handler) DebugRaw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DebugRaw")
	defer span.End()

	raw, err := h.matchService.RawPayload(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "debug raw fetch failed", "error", err)
		writeJSON(ctx, w, http.StatusOK, debugErrorDTO{Error: err.Error()})
		return
	}

	writeRawJSON(ctx, w, http.StatusOK, raw)
}
