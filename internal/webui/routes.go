package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Routes builds the router with request logging applied to every endpoint.
func (ui *WebUI) Routes() http.Handler {
	router := httprouter.New()

	router.Handler(http.MethodGet, "/", http.HandlerFunc(ui.indexHandler))
	router.Handler(http.MethodGet, "/template", http.HandlerFunc(ui.templateHandler))
	router.Handler(http.MethodPost, "/generate", http.HandlerFunc(ui.generateHandler))
	router.Handler(http.MethodGet, "/download/:run_id", http.HandlerFunc(ui.downloadHandler))
	router.Handler(http.MethodGet, "/download/:run_id/results.xlsx", http.HandlerFunc(ui.workbookHandler))

	if !ui.IsProduction() {
		router.Handler(http.MethodGet, "/debug/", http.HandlerFunc(ui.debugIndexHandler))
	}

	return NewRequestLoggingMiddleware(ui.Logger)(router)
}
