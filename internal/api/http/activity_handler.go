package http

import (
	"net/http"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/service"
)

// ActivityHandler serves the scoped activity log feed.
type ActivityHandler struct {
	activity service.ActivityService
}

func NewActivityHandler(activity service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	page, pageSize := pagination(r)
	entries, total, err := h.activity.List(r.Context(), scope, listFilter(r), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: entries, Total: total})
}
