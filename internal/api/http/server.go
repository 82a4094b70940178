package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	appAgent "github.com/orderdesk/orderdesk/internal/application/agent"
	domainAgent "github.com/orderdesk/orderdesk/internal/domain/agent"
)

// AgentService is the application surface the HTTP layer depends on.
type AgentService interface {
	Run(ctx context.Context, req appAgent.AskRequest) (*appAgent.AskResponse, error)
	ActionsFor(ctx context.Context, credential string) ([]appAgent.ActionSummary, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	agentSvc AgentService
	logger   zerolog.Logger
}

func NewServer(agentSvc AgentService, logger zerolog.Logger) *Server {
	return &Server{
		agentSvc: agentSvc,
		logger:   logger.With().Str("service", "http").Logger(),
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/agent", func(r chi.Router) {
			r.Post("/ask", s.ask)
			r.Get("/actions", s.listActions)
		})
	})

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// respondForError maps application errors to HTTP statuses. Anything that is
// not a caller mistake is an upstream failure: the engine itself holds no
// state that can break.
func (s *Server) respondForError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appAgent.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
	case errors.Is(err, appAgent.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domainAgent.ErrPlanParse), errors.Is(err, domainAgent.ErrPlanSchema):
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}
