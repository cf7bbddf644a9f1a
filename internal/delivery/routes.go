package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

// ServiceInfo — что отдаём на корневом эндпоинте.
type ServiceInfo struct {
	Service          string `json:"service"`
	Model            string `json:"model"`
	ConcurrencyLimit int    `json:"concurrency_limit"`
}

func RegisterRoutes(r chi.Router, h *WebhookHandler, info ServiceInfo) {
	r.Route("/", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		pr.Post("/webhook/{secret}", h.HandleUpdate)
		pr.Get("/webhook/{secret}", h.Verify)

		pr.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{
				"ok":                true,
				"service":           info.Service,
				"model":             info.Model,
				"concurrency_limit": info.ConcurrencyLimit,
			})
		})

		pr.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"ok": true, "status": "up"})
		})
	})
}
