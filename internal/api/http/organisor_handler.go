package http

import (
	"net/http"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/service"
)

// OrganisorHandler serves organisor profiles, organisation listings and the
// assignable-agents selection endpoint.
type OrganisorHandler struct {
	organisors service.OrganisorService
}

func NewOrganisorHandler(organisors service.OrganisorService) *OrganisorHandler {
	return &OrganisorHandler{organisors: organisors}
}

func (h *OrganisorHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	organisor, err := h.organisors.Get(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, organisor)
}

func (h *OrganisorHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	organisor, err := h.organisors.Update(r.Context(), scope, id, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, organisor)
}

func (h *OrganisorHandler) ListOrganisations(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	orgs, err := h.organisors.ListOrganisations(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

// AssignableAgents returns the eligible assignee set for an organisation:
// its agents minus admins and minus the acting user. Forms re-query it
// whenever the selected organisation changes.
func (h *OrganisorHandler) AssignableAgents(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}
	orgID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	agents, err := h.organisors.AssignableAgents(r.Context(), scope, orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}
