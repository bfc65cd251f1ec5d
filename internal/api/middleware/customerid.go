package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/validation"
)

// ValidateCustomerID is a middleware that validates the {customerId} URL
// parameter as a UUID before the handler runs. Invalid IDs are rejected with
// a 400 response so handlers can assume a well-formed customer ID.
func ValidateCustomerID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerID := chi.URLParam(r, "customerId")
		if err := validation.ValidateCustomerID(customerID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid customer ID", err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}
