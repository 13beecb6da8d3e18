package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the dashboard front end to call the API from the given origins.
// "*" allows any origin. The chat key header must be allowed for the chatbot
// page to work cross-origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Gemini-Api-Key"},
		ExposedHeaders: []string{"X-Cache", "ETag"},
		MaxAge:         300,
	})
}
