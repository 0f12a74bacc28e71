package httpx

import (
	"encoding/json"
	"net/http"

	"intentpay/internal/config"
	"intentpay/internal/http/handlers"
	middlewarex "intentpay/internal/http/middleware"
	"intentpay/internal/provider"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config           config.Cfg
	ProviderRegistry *provider.Registry
}

var operations = []provider.OperationType{
	provider.OpPurchase,
	provider.OpAuthorize,
	provider.OpCapture,
	provider.OpRefund,
	provider.OpVoid,
	provider.OpVerify,
}

// NewRouter creates the HTTP facade in front of the gateway registry
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middlewarex.RequestLog)
	r.Use(chimw.Recoverer)

	// Health check (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "ok",
			"accounts": len(deps.ProviderRegistry.List()),
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Gateway operations (protected by admin auth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarex.AdminAuth(deps.Config))

		r.Get("/accounts", handlers.ListAccounts(deps.ProviderRegistry))

		r.Route("/{account}", func(r chi.Router) {
			r.Use(middlewarex.ResolveAccount(deps.ProviderRegistry))
			for _, op := range operations {
				r.Post("/"+string(op), handlers.Operation(deps.ProviderRegistry, op))
			}
		})
	})

	return r
}
