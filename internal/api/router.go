package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the gateway routes. The agent only ever listens on
// loopback, so CORS is wide open: the browser talking to us is already on
// this machine.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(allowLocalCORS)

	r.Get("/agent", h.handleDeviceInfo)
	r.Get("/status", h.handleStatus)
	r.Get("/printers", h.handlePrinters)
	r.Post("/print", h.handlePrint)
	r.Post("/print/batch", h.handlePrintBatch)
	r.Get("/settings", h.handleGetSettings)
	r.Put("/settings", h.handleSaveSettings)
	r.Get("/jobs", h.handleJobs)
	r.Delete("/jobs", h.handleClearJobs)
	r.Post("/update", h.handleUpdate)
	r.Get("/ws", h.hub.Serve)

	return r
}

func allowLocalCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
