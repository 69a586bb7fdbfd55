package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds mock server configuration.
type Config struct {
	Store Store
	// Token, when set, is the only accepted bearer token. When empty, any
	// non-empty bearer token is accepted; requests without one are still
	// rejected, matching what the generated clients send.
	Token string
	// CSRF, when set, must match the X-CSRF-Token header on mutations.
	CSRF string
}

type server struct {
	store Store
	token string
	csrf  string
}

// NewRouter builds the mock API handler. Every entity collection lives
// under /api/<kebab-name> with the endpoint convention the generated
// actions use.
func NewRouter(cfg Config) http.Handler {
	s := &server{store: cfg.Store, token: cfg.Token, csrf: cfg.CSRF}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/{entity}", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/", s.list)
		r.Get("/{uuid}", s.get)
		r.With(s.checkCSRF).Post("/store", s.create)
		r.With(s.checkCSRF).Patch("/update/{uuid}", s.update)
		r.With(s.checkCSRF).Delete("/delete/{uuid}", s.remove)
		r.With(s.checkCSRF).Put("/restore/{uuid}", s.restore)
	})

	return r
}

// Run serves the mock API until ctx is canceled.
func Run(ctx context.Context, addr string, cfg Config) error {
	srv := &http.Server{Addr: addr, Handler: NewRouter(cfg)}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	log.Printf("mock API listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// auth requires a bearer token on every collection route.
func (s *server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			writeMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if s.token != "" && token != s.token {
			writeMessage(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkCSRF enforces the CSRF header on mutations when configured.
func (s *server) checkCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.csrf != "" && r.Header.Get("X-CSRF-Token") != s.csrf {
			writeMessage(w, http.StatusForbidden, "missing or invalid CSRF token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(chi.URLParam(r, "entity"))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, records)
}

// get answers a uuid miss with a successful empty envelope; the client
// layer turns the missing data field into its not-found error.
func (s *server) get(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(chi.URLParam(r, "entity"), chi.URLParam(r, "uuid"))
	if errors.Is(err, ErrNoRecord) {
		writeJSON(w, http.StatusOK, envelope{Success: true})
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, rec)
}

func (s *server) create(w http.ResponseWriter, r *http.Request) {
	attrs, ok := decodeAttrs(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Create(chi.URLParam(r, "entity"), attrs)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusCreated, rec)
}

func (s *server) update(w http.ResponseWriter, r *http.Request) {
	attrs, ok := decodeAttrs(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Update(chi.URLParam(r, "entity"), chi.URLParam(r, "uuid"), attrs)
	s.writeMutation(w, rec, err)
}

func (s *server) remove(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Delete(chi.URLParam(r, "entity"), chi.URLParam(r, "uuid"))
	s.writeMutation(w, rec, err)
}

func (s *server) restore(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Restore(chi.URLParam(r, "entity"), chi.URLParam(r, "uuid"))
	s.writeMutation(w, rec, err)
}

func (s *server) writeMutation(w http.ResponseWriter, rec Record, err error) {
	if errors.Is(err, ErrNoRecord) {
		writeMessage(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeData(w, http.StatusOK, rec)
}

// envelope is the response shape every endpoint answers with.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// decodeAttrs decodes the mutation body into a bag of attributes.
func decodeAttrs(w http.ResponseWriter, r *http.Request) (Record, bool) {
	defer r.Body.Close()
	var attrs Record
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	return attrs, true
}
