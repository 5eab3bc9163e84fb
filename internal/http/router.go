package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lmonteiro/pindureta/internal/http/closure"
	"github.com/lmonteiro/pindureta/internal/http/customer"
	"github.com/lmonteiro/pindureta/internal/http/transaction"
)

func New(
	customersV1 *customer.Handler,
	transactionsV1 *transaction.Handler,
	closuresV1 *closure.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			customersV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/closures", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			closuresV1.Routes(r)
		})
	})

	return router
}
