package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/last-24h-matches", handler.ListCurrentMatches)
	mux.HandleFunc("GET /api/todays-matches", handler.ListCurrentMatches)
	mux.HandleFunc("GET /api/debug/raw", handler.DebugRaw)
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.MatchesPage)
	mux.HandleFunc("GET /last-24h-matches", handler.MatchesPage)
	mux.HandleFunc("GET /todays-matches", handler.MatchesPage)
	mux.Handle("GET /static/", handler.StaticFiles())
}
