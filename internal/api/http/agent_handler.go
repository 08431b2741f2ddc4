package http

import (
	"net/http"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/service"
)

// AgentHandler serves agent management for organisors and admins.
type AgentHandler struct {
	agents service.AgentService
}

func NewAgentHandler(agents service.AgentService) *AgentHandler {
	return &AgentHandler{agents: agents}
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	var req struct {
		Email          string `json:"email"`
		Username       string `json:"username"`
		Password       string `json:"password"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		OrganisationID int64  `json:"organisation_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	agent, err := h.agents.Create(r.Context(), scope, service.CreateAgentInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		OrgID:     req.OrganisationID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	agent, err := h.agents.Get(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	agents, err := h.agents.List(r.Context(), scope, listFilter(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.agents.Delete(r.Context(), scope, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
