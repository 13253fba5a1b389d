// Package server exposes the mirror resolvers over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"github.com/sirupsen/logrus"

	"github.com/Tenakskd/ytserver-v2/internal/media"
	"github.com/Tenakskd/ytserver-v2/internal/provider"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	Mirrors []string `json:"mirrors"`
}

// Server routes requests to the configured mirror providers.
type Server struct {
	providers map[media.Mirror]provider.Provider
	log       logrus.FieldLogger
	version   string
}

// New creates a Server. The providers map is read-only after construction.
func New(providers map[media.Mirror]provider.Provider, log logrus.FieldLogger, version string) *Server {
	return &Server{
		providers: providers,
		log:       log,
		version:   version,
	}
}

// Handler returns the routed, logged and compressed HTTP handler.
func (s *Server) Handler() http.Handler {
	// Match on the escaped path so an id containing %2F stays one segment.
	r := mux.NewRouter().UseEncodedPath()
	r.Use(s.logRequests)
	r.NotFoundHandler = s.logRequests(http.HandlerFunc(notFound))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	for _, m := range s.mirrors() {
		api.HandleFunc("/server/"+m.String()+"/{id}", s.handleResolve(s.providers[m])).Methods(http.MethodGet)
	}

	return gzhttp.GzipHandler(r)
}

func (s *Server) mirrors() []media.Mirror {
	ms := make([]media.Mirror, 0, len(s.providers))
	for m := range s.providers {
		ms = append(ms, m)
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })
	return ms
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.providers))
	for _, m := range s.mirrors() {
		names = append(names, m.String())
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "ok",
		Version: s.version,
		Mirrors: names,
	})
}

// handleResolve serves GET /api/server/<mirror>/{id}. The id is unescaped
// and otherwise passed to the provider untouched.
func (s *Server) handleResolve(p provider.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if unescaped, err := url.PathUnescape(id); err == nil {
			id = unescaped
		}

		rec, err := p.Resolve(r.Context(), id)
		if err != nil {
			details := "failed to fetch video data"
			var rerr *provider.ResolveError
			if errors.As(err, &rerr) {
				details = rerr.Error()
			}
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   fmt.Sprintf("Failed to retrieve video from %s", p.Mirror()),
				Details: details,
			})
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

// ListenAndServe serves h on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
