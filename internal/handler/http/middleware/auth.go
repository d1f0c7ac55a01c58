package middleware

import (
	"context"
	"net/http"

	"github.com/furnishop/shop-backend-go/internal/domain/auth"
	"github.com/furnishop/shop-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only verified access tokens whose role is known.
// It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if role, _ := claims["role"].(string); !auth.Role(role).IsValid() {
			response.HandleError(w, auth.ErrInvalidRole)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Subject returns the sub claim of the verified token, or "".
func Subject(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
