package middleware

import (
	"context"
	"net/http"

	"github.com/vancomm/minefield/internal/config"
)

type ctxKey int

const ctxPlayerClaims ctxKey = iota

func WithPlayerClaims(ctx context.Context, claims *config.PlayerClaims) context.Context {
	return context.WithValue(ctx, ctxPlayerClaims, claims)
}

func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(ctxPlayerClaims).(*config.PlayerClaims)
	return claims, ok && claims != nil
}

// Auth puts the claims from valid auth cookies into the request context.
// Requests without them pass through anonymously.
func Auth(cookies *config.Cookies) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPlayerClaims(r.Context(), claims)))
		})
	}
}
