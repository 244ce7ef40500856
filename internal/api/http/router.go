// Package http is the REST surface of the dues tracker. Handlers translate
// JSON requests into service calls and sentinel errors into status codes;
// all business rules live in the service layer.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/scheduler"
	"dues-tracker-backend/internal/security"
	"dues-tracker-backend/internal/service"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth         service.AuthService
	Members      service.MemberService
	Payments     service.PaymentService
	Expenses     service.ExpenseService
	Stats        service.StatsService
	Gateway      service.NotificationGateway
	Registry     *scheduler.Registry
	TokenManager security.TokenManager
}

// NewRouter builds the full route table. Login and health are public; every
// other endpoint needs a valid access token, and mutating or treasury
// endpoints additionally need the Treasurer or Admin role.
func NewRouter(h Handlers) *mux.Router {
	authHandler := NewAuthHandler(h.Auth)
	memberHandler := NewMemberHandler(h.Members)
	paymentHandler := NewPaymentHandler(h.Payments)
	expenseHandler := NewExpenseHandler(h.Expenses)
	statsHandler := NewStatsHandler(h.Stats)
	schedulerHandler := NewSchedulerHandler(h.Registry)
	notificationHandler := NewNotificationHandler(h.Members, h.Gateway)

	authMW := NewAuthMiddleware(h.TokenManager)
	treasury := authMW.RequireRole(domain.MemberRoleTreasurer, domain.MemberRoleAdmin)

	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/refresh", authHandler.Refresh).Methods("POST")

	// Authenticated routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMW.Authenticate)

	api.HandleFunc("/members", memberHandler.List).Methods("GET")
	api.HandleFunc("/members/{id:[0-9]+}", memberHandler.Get).Methods("GET")
	api.HandleFunc("/members/{id:[0-9]+}/transactions", paymentHandler.ListMemberTransactions).Methods("GET")
	api.HandleFunc("/stats", statsHandler.Get).Methods("GET")
	api.HandleFunc("/expenses", expenseHandler.List).Methods("GET")

	// Members can pay their own dues; the provider rejects bad sources.
	api.HandleFunc("/members/{id:[0-9]+}/payments", paymentHandler.ProcessPayment).Methods("POST")
	api.HandleFunc("/members/{id:[0-9]+}/payment-link", paymentHandler.CreatePaymentLink).Methods("POST")

	// Treasury routes
	mgmt := api.NewRoute().Subrouter()
	mgmt.Use(treasury)

	mgmt.HandleFunc("/members", memberHandler.Create).Methods("POST")
	mgmt.HandleFunc("/members/{id:[0-9]+}", memberHandler.Update).Methods("PUT")
	mgmt.HandleFunc("/members/{id:[0-9]+}", memberHandler.Delete).Methods("DELETE")
	mgmt.HandleFunc("/members/{id:[0-9]+}/payments/manual", paymentHandler.RecordManualPayment).Methods("POST")
	mgmt.HandleFunc("/members/{id:[0-9]+}/remind", notificationHandler.RemindMember).Methods("POST")

	mgmt.HandleFunc("/transactions", paymentHandler.ListAllTransactions).Methods("GET")

	mgmt.HandleFunc("/expenses", expenseHandler.Create).Methods("POST")
	mgmt.HandleFunc("/expenses/{id:[0-9]+}", expenseHandler.Delete).Methods("DELETE")

	mgmt.HandleFunc("/scheduler/jobs", schedulerHandler.ListJobs).Methods("GET")
	mgmt.HandleFunc("/scheduler/jobs/{id}/pause", schedulerHandler.PauseJob).Methods("POST")
	mgmt.HandleFunc("/scheduler/jobs/{id}/resume", schedulerHandler.ResumeJob).Methods("POST")
	mgmt.HandleFunc("/scheduler/jobs/{id}", schedulerHandler.RemoveJob).Methods("DELETE")

	mgmt.HandleFunc("/notifications/test", notificationHandler.TestConnection).Methods("POST")

	return r
}
