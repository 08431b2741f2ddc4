package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
)

// pathID extracts a positive int64 path variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, zero when absent.
func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}

func queryInt64(r *http.Request, name string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	return v
}

// pagination reads the standard page/page_size parameters.
func pagination(r *http.Request) (page, pageSize int) {
	return queryInt(r, "page"), queryInt(r, "page_size")
}

// listFilter reads the optional narrowing parameters shared by listings.
// The service layer normalizes them against the caller's scope.
func listFilter(r *http.Request) authz.Filter {
	return authz.Filter{
		OrgID:   queryInt64(r, "organisation_id"),
		AgentID: queryInt64(r, "agent_id"),
		UserID:  queryInt64(r, "user_id"),
	}
}

// listResponse is the uniform paginated envelope.
type listResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
}
