package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// Cors lets any origin in during development and only allowedOrigins
// otherwise.
func Cors(development bool, allowedOrigins ...string) Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return development || slices.Contains(allowedOrigins, origin)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	return cors.New(options).Handler
}
