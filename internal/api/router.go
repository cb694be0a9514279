package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/clinic-fees-service/internal/api/handlers"
	"github.com/Cheertaboi/clinic-fees-service/internal/service"
)

// NewRouter builds the HTTP router for the fees-service
func NewRouter(svc *service.PricingService) http.Handler {
	r := chi.NewRouter()

	feesHandler := handlers.NewFeesHandler(svc)

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", feesHandler.ListLocations)
		r.Get("/{locationID}/tables", feesHandler.GetTables)
		r.Get("/{locationID}/tables.html", feesHandler.GetTablesHTML)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
