package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/repository"
)

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) Create(ctx context.Context, scope authz.Scope, lead *domain.Lead) (*domain.Lead, error) {
	args := m.Called(ctx, scope, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) Get(ctx context.Context, scope authz.Scope, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) Update(ctx context.Context, scope authz.Scope, lead *domain.Lead) (*domain.Lead, error) {
	args := m.Called(ctx, scope, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}
func (m *MockLeadService) Delete(ctx context.Context, scope authz.Scope, id int64) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}
func (m *MockLeadService) List(ctx context.Context, scope authz.Scope, filter repository.LeadFilter, page, pageSize int) ([]domain.Lead, int64, error) {
	args := m.Called(ctx, scope, filter, page, pageSize)
	return args.Get(0).([]domain.Lead), args.Get(1).(int64), args.Error(2)
}
func (m *MockLeadService) EnsureDefaultCategories(ctx context.Context, orgID int64) error {
	args := m.Called(ctx, orgID)
	return args.Error(0)
}
func (m *MockLeadService) ListCategories(ctx context.Context, scope authz.Scope, filter authz.Filter, kind domain.CategoryKind) ([]domain.Category, error) {
	args := m.Called(ctx, scope, filter, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockLeadService) UpdateCategory(ctx context.Context, scope authz.Scope, category *domain.Category) error {
	args := m.Called(ctx, scope, category)
	return args.Error(0)
}

func withScope(r *http.Request, scope authz.Scope) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), scopeContextKey, scope))
}

func TestLeadHandler_Get(t *testing.T) {
	svc := new(MockLeadService)
	handler := NewLeadHandler(svc)
	scope := authz.Organisor(10, 5)

	t.Run("Success", func(t *testing.T) {
		svc.On("Get", mock.Anything, scope, int64(7)).
			Return(&domain.Lead{ID: 7, FirstName: "Ada"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/7", nil)
		req = mux.SetURLVars(withScope(req, scope), map[string]string{"id": "7"})
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var lead domain.Lead
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
		assert.Equal(t, "Ada", lead.FirstName)
	})

	t.Run("OutOfScopeIs404", func(t *testing.T) {
		svc.On("Get", mock.Anything, scope, int64(8)).
			Return(nil, domain.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/8", nil)
		req = mux.SetURLVars(withScope(req, scope), map[string]string{"id": "8"})
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadIDIs400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/abc", nil)
		req = mux.SetURLVars(withScope(req, scope), map[string]string{"id": "abc"})
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingScopeIs401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/7", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "7"})
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	svc.AssertExpectations(t)
}

func TestLeadHandler_Create(t *testing.T) {
	svc := new(MockLeadService)
	handler := NewLeadHandler(svc)
	scope := authz.Organisor(10, 5)

	t.Run("Success", func(t *testing.T) {
		svc.On("Create", mock.Anything, scope, mock.MatchedBy(func(l *domain.Lead) bool {
			return l.FirstName == "Ada" && l.LastName == "Lovelace"
		})).Return(&domain.Lead{ID: 7, FirstName: "Ada", LastName: "Lovelace"}, nil).Once()

		body := strings.NewReader(`{"first_name":"Ada","last_name":"Lovelace"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", body)
		rec := httptest.NewRecorder()

		handler.Create(rec, withScope(req, scope))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("ValidationFailureIs400WithFields", func(t *testing.T) {
		svc.On("Create", mock.Anything, scope, mock.Anything).
			Return(nil, domain.NewValidationError("first_name", "first name is required")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		handler.Create(rec, withScope(req, scope))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp errorBody
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "first_name")
	})

	t.Run("MalformedBodyIs400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(`{`))
		rec := httptest.NewRecorder()

		handler.Create(rec, withScope(req, scope))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	svc.AssertExpectations(t)
}

func TestLeadHandler_List_FilterParsing(t *testing.T) {
	svc := new(MockLeadService)
	handler := NewLeadHandler(svc)
	scope := authz.Organisor(10, 5)

	svc.On("List", mock.Anything, scope, mock.MatchedBy(func(f repository.LeadFilter) bool {
		return f.Unassigned && f.Filter.AgentID == 3
	}), 2, 10).Return([]domain.Lead{}, int64(0), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?unassigned=true&agent_id=3&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, withScope(req, scope))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestLeadHandler_ListCategories_KindRequired(t *testing.T) {
	svc := new(MockLeadService)
	handler := NewLeadHandler(svc)
	scope := authz.Organisor(10, 5)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories?kind=bogus", nil)
	rec := httptest.NewRecorder()

	handler.ListCategories(rec, withScope(req, scope))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListCategories")
}
