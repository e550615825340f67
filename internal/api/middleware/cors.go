package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/config"
)

// CORS returns the cross-origin middleware for the configured origins.
//
// Share viewers authenticate with the link token and password, never with
// cookies, so credentials are only allowed for an explicit origin list.
// Content-Disposition is exposed so browsers can read report filenames.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	wildcard := slices.Contains(cfg.AllowedOrigins, "*")

	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Type", "Content-Disposition", "Content-Length"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}
