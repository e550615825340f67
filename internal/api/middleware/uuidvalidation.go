// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"encoding/hex"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/validation"
)

const shareTokenLength = 64

// ValidateUUIDMiddleware rejects requests whose {uuid} URL parameter is
// missing or not a UUID with 400 Bad Request.
//
// Example usage in router:
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUIDMiddleware)
//	    r.Put("/", handler.UpdatePosition)
//	    r.Delete("/", handler.DeletePosition)
//	})
func ValidateUUIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		UUID := chi.URLParam(r, "uuid")

		if UUID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid UUID is required", "")
			return
		}

		if err := validation.ValidateUUID(UUID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ValidateShareTokenMiddleware answers 404 for a {token} URL parameter that
// cannot be a share token, without touching the database. A malformed token
// is reported exactly like an unknown one.
func ValidateShareTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		if len(token) != shareTokenLength {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrShareLinkNotFound.Error(), "")
			return
		}
		if _, err := hex.DecodeString(token); err != nil {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrShareLinkNotFound.Error(), "")
			return
		}

		next.ServeHTTP(w, r)
	})
}
