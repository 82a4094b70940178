package httpapi

import (
	"net/http"

	appAgent "github.com/orderdesk/orderdesk/internal/application/agent"
)

type askRequest struct {
	Objective  string `json:"objective"`
	Credential string `json:"credential,omitempty"`
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	credential := req.Credential
	if credential == "" {
		credential = bearerToken(r)
	}

	resp, err := s.agentSvc.Run(r.Context(), appAgent.AskRequest{
		Objective:  req.Objective,
		Credential: credential,
	})
	if err != nil {
		s.respondForError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	actions, err := s.agentSvc.ActionsFor(r.Context(), bearerToken(r))
	if err != nil {
		s.respondForError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"actions": actions})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}
