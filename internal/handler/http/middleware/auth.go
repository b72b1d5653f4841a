package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/user"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/handler/http/response"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests whose verified token is missing or is not an
// access token. Pair it with jwtauth.Verifier, which does the signature check.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorFromContext rebuilds the acting user from the verified token claims.
// It only works downstream of AuthRequired.
func ActorFromContext(r *http.Request) (user.Actor, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Actor{}, false
	}

	actor, err := jwt.ActorFromClaims(claims)
	if err != nil {
		return user.Actor{}, false
	}

	return actor, true
}
