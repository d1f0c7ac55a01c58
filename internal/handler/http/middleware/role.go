package middleware

import (
	"net/http"

	"github.com/furnishop/shop-backend-go/internal/domain/auth"
	"github.com/furnishop/shop-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireOwner requires owner role
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrOwnerAccessRequired)
			return
		}

		if role, _ := claims["role"].(string); auth.Role(role) != auth.RoleOwner {
			response.HandleError(w, auth.ErrOwnerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
