package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"leadhub-backend/internal/security"
	"leadhub-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Tokens        security.TokenManager
	Auth          service.AuthService
	Organisors    service.OrganisorService
	Agents        service.AgentService
	Leads         service.LeadService
	Tasks         service.TaskService
	Orders        service.OrderService
	Products      service.ProductService
	Activity      service.ActivityService
	Notifications service.NotificationService
}

// NewRouter builds the full API surface under /api/v1. Everything except
// signup, login, refresh and email verification sits behind the auth
// middleware.
func NewRouter(s Services) *mux.Router {
	root := mux.NewRouter()
	root.Use(RequestLogging)

	api := root.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(s.Auth)
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-email", authHandler.VerifyEmail).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(NewAuthMiddleware(s.Tokens, s.Auth).Handler)

	authed.HandleFunc("/auth/profile", authHandler.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/auth/profile", authHandler.UpdateProfile).Methods(http.MethodPut)

	organisorHandler := NewOrganisorHandler(s.Organisors)
	authed.HandleFunc("/organisors/{id}", organisorHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/organisors/{id}", organisorHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/orgs", organisorHandler.ListOrganisations).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{id}/assignable-agents", organisorHandler.AssignableAgents).Methods(http.MethodGet)

	agentHandler := NewAgentHandler(s.Agents)
	authed.HandleFunc("/agents", agentHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/agents", agentHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/agents/{id}", agentHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/agents/{id}", agentHandler.Delete).Methods(http.MethodDelete)

	leadHandler := NewLeadHandler(s.Leads)
	authed.HandleFunc("/leads", leadHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/leads", leadHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/leads/{id}", leadHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/leads/{id}", leadHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/leads/{id}", leadHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/categories", leadHandler.ListCategories).Methods(http.MethodGet)
	authed.HandleFunc("/categories/{id}", leadHandler.UpdateCategory).Methods(http.MethodPut)

	taskHandler := NewTaskHandler(s.Tasks)
	authed.HandleFunc("/tasks", taskHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/tasks", taskHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id}", taskHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id}", taskHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods(http.MethodDelete)

	orderHandler := NewOrderHandler(s.Orders)
	authed.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}", orderHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}", orderHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/orders/{id}", orderHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/orders/{id}/cancel", orderHandler.Cancel).Methods(http.MethodPost)

	productHandler := NewProductHandler(s.Products)
	authed.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/products/{id}/price", productHandler.UpdatePrice).Methods(http.MethodPut)
	authed.HandleFunc("/products/{id}/stock", productHandler.UpdateStock).Methods(http.MethodPut)
	authed.HandleFunc("/stock-alerts", productHandler.ListStockAlerts).Methods(http.MethodGet)
	authed.HandleFunc("/stock-alerts/{id}/resolve", productHandler.ResolveStockAlert).Methods(http.MethodPost)

	notificationHandler := NewNotificationHandler(s.Notifications)
	authed.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/unread-count", notificationHandler.UnreadCount).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods(http.MethodPost)
	authed.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	activityHandler := NewActivityHandler(s.Activity)
	authed.HandleFunc("/activity", activityHandler.List).Methods(http.MethodGet)

	return root
}
