package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware that applies the storefront's allowed origin
// policy. Origins come from configuration so deployments can add their
// frontend domains without a rebuild.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-ODG-Session", "X-Requested-With"},
		ExposedHeaders:   []string{"X-ODG-Session"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
