package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173", // local storefront dev
	"http://localhost:3000",
}

// CORS returns middleware that applies the API's allowed origin policy. The
// storefront origin from configuration is appended to the local defaults.
func CORS(clientBaseURL string) func(http.Handler) http.Handler {
	origins := defaultCORSOrigins
	if clientBaseURL != "" {
		origins = append(append([]string{}, origins...), clientBaseURL)
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
