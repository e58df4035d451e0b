package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// ShutdownTimeout bounds the wait for in-flight requests on shutdown
const ShutdownTimeout = 5 * time.Second

// NewRouter wires the API routes. The limiter, if not nil, guards /api.
// Unknown paths answer 404 and known paths with the wrong method 405, both
// as JSON errors.
func NewRouter(h *Handler, limiter *IPRateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/healthz", h.Health).Methods("GET")

	api := func(path string, handler http.HandlerFunc, method string) {
		var next http.Handler = handler
		if limiter != nil {
			next = limiter.LimitMiddleware(next)
		}
		r.Handle("/api"+path, next).Methods(method)
	}
	api("/check", h.Check, "POST")
	api("/report", h.Report, "POST")
	api("/batch", h.Batch, "POST")
	api("/tables/{name}", h.Tables, "GET")
	return r
}

// Run serves handler on addr until ctx is done, then shuts the server down
// gracefully
func Run(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutdown signal received, closing active connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}
