package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/fincalc-engine/pkg/response"
)

// SetupRoutes wires every endpoint onto a new router.
func SetupRoutes(calc *CalculatorHandler, health *HealthHandler, metrics *Metrics, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger), metrics.Middleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found")
	})

	// Health check
	router.HandleFunc("/health", health.Health).Methods("GET")
	router.HandleFunc("/health/ready", health.Ready).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(response.CORSMiddleware)

	api.HandleFunc("/loans/totals", calc.LoanTotals).Methods("POST")
	api.HandleFunc("/loans/schedule", calc.LoanSchedule).Methods("POST")

	api.HandleFunc("/deposits/fd", calc.FDMaturity).Methods("POST")
	api.HandleFunc("/deposits/rd", calc.RDMaturity).Methods("POST")
	api.HandleFunc("/deposits/premature", calc.PrematurePayout).Methods("POST")

	api.HandleFunc("/msme/nayak", calc.NayakWC).Methods("POST")
	api.HandleFunc("/msme/tandon", calc.TandonMPBF).Methods("POST")
	api.HandleFunc("/msme/ratios", calc.FinancialRatios).Methods("POST")
	api.HandleFunc("/msme/drawing-power", calc.DrawingPower).Methods("POST")
	api.HandleFunc("/msme/cgtmse", calc.CGTMSEFee).Methods("POST")

	api.HandleFunc("/shg/slab-rate", calc.SlabRate).Methods("POST")
	api.HandleFunc("/shg/schedule", calc.SHGSchedule).Methods("POST")
	api.HandleFunc("/shg/outstanding", calc.Outstanding).Methods("POST")
	api.HandleFunc("/shg/reconcile", calc.Reconcile).Methods("POST")

	return router
}
