package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token carrying a known role.
// jwtauth.Verifier must run first.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := jwt.PrincipalFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
