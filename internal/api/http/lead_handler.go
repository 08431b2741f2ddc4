package http

import (
	"net/http"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
	"leadhub-backend/internal/service"
)

// LeadHandler serves lead CRUD and lead category endpoints.
type LeadHandler struct {
	leads service.LeadService
}

func NewLeadHandler(leads service.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	var lead domain.Lead
	if err := decode(r, &lead); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.leads.Create(r.Context(), scope, &lead)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	lead, err := h.leads.Get(r.Context(), scope, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var lead domain.Lead
	if err := decode(r, &lead); err != nil {
		writeError(w, err)
		return
	}
	lead.ID = id

	updated, err := h.leads.Update(r.Context(), scope, &lead)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.leads.Delete(r.Context(), scope, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	filter := repository.LeadFilter{
		Filter:           listFilter(r),
		SourceCategoryID: queryInt64(r, "source_category_id"),
		ValueCategoryID:  queryInt64(r, "value_category_id"),
		Unassigned:       r.URL.Query().Get("unassigned") == "true",
	}
	page, pageSize := pagination(r)

	leads, total, err := h.leads.List(r.Context(), scope, filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: leads, Total: total})
}

func (h *LeadHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	scope, ok := ScopeFrom(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthenticated)
		return
	}

	kind := domain.CategoryKind(r.URL.Query().Get("kind"))
	if kind != domain.CategorySource && kind != domain.CategoryValue {
		writeError(w, domain.NewValidationError("kind", "kind must be source or value"))
		return
	}

	categories, err := h.leads.ListCategories(r.Context(), scope, listFilter(r), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *LeadHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
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

	var category domain.Category
	if err := decode(r, &category); err != nil {
		writeError(w, err)
		return
	}
	category.ID = id

	if err := h.leads.UpdateCategory(r.Context(), scope, &category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}
