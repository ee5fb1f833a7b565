package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"subsidy-dashboard/internal/handlers"
	"subsidy-dashboard/internal/middleware"
)

func NewRouter(
	recipientHandler *handlers.RecipientHandler,
	merchantHandler *handlers.MerchantHandler,
	productHandler *handlers.ProductHandler,
	transactionHandler *handlers.TransactionHandler,
	dashboardHandler *handlers.DashboardHandler,
	adminActionLogHandler *handlers.AdminActionLogHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Recipients (beneficiaries). Static segments are registered before /{id}.
	recipientsAPI := r.PathPrefix("/api/recipients").Subrouter()
	recipientsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireMutation)
	recipientsAPI.HandleFunc("", recipientHandler.ListRecipients).Methods("GET")
	recipientsAPI.HandleFunc("", recipientHandler.CreateRecipient).Methods("POST")
	recipientsAPI.HandleFunc("/statistics", recipientHandler.Statistics).Methods("GET")
	recipientsAPI.HandleFunc("/{id}", recipientHandler.GetRecipient).Methods("GET")
	recipientsAPI.HandleFunc("/{id}", recipientHandler.UpdateRecipient).Methods("PATCH", "PUT")
	recipientsAPI.HandleFunc("/{id}", recipientHandler.DeleteRecipient).Methods("DELETE")

	// Merchants (agents and kiosks)
	merchantsAPI := r.PathPrefix("/api/merchants").Subrouter()
	merchantsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireMutation)
	merchantsAPI.HandleFunc("", merchantHandler.ListMerchants).Methods("GET")
	merchantsAPI.HandleFunc("", merchantHandler.CreateMerchant).Methods("POST")
	merchantsAPI.HandleFunc("/statistics", merchantHandler.Statistics).Methods("GET")
	merchantsAPI.HandleFunc("/map", merchantHandler.MapMarkers).Methods("GET")
	merchantsAPI.HandleFunc("/{id}", merchantHandler.GetMerchant).Methods("GET")
	merchantsAPI.HandleFunc("/{id}", merchantHandler.UpdateMerchant).Methods("PATCH", "PUT")
	merchantsAPI.HandleFunc("/{id}", merchantHandler.DeleteMerchant).Methods("DELETE")
	merchantsAPI.HandleFunc("/{id}/products", merchantHandler.MerchantProducts).Methods("GET")

	// Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireMutation)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/statistics", productHandler.Statistics).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PATCH", "PUT")
	productsAPI.HandleFunc("/{id}", productHandler.DeleteProduct).Methods("DELETE")

	// Transactions. Approve and reject address a transaction by its number.
	transactionsAPI := r.PathPrefix("/api/transactions").Subrouter()
	transactionsAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireMutation)
	transactionsAPI.HandleFunc("", transactionHandler.ListTransactions).Methods("GET")
	transactionsAPI.HandleFunc("", transactionHandler.CreateTransaction).Methods("POST")
	transactionsAPI.HandleFunc("/statistics", transactionHandler.Statistics).Methods("GET")
	transactionsAPI.HandleFunc("/{number}/approve", transactionHandler.ApproveTransaction).Methods("POST")
	transactionsAPI.HandleFunc("/{number}/reject", transactionHandler.RejectTransaction).Methods("POST")
	transactionsAPI.HandleFunc("/{id}", transactionHandler.GetTransaction).Methods("GET")
	transactionsAPI.HandleFunc("/{id}", transactionHandler.UpdateTransaction).Methods("PATCH", "PUT")
	transactionsAPI.HandleFunc("/{id}", transactionHandler.DeleteTransaction).Methods("DELETE")

	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/summary", dashboardHandler.Summary).Methods("GET")

	adminActionLogsAPI := r.PathPrefix("/api/admin-action-logs").Subrouter()
	adminActionLogsAPI.Use(authMiddleware.Authenticate)
	adminActionLogsAPI.HandleFunc("", adminActionLogHandler.ListActionLogs).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	})

	return r
}
