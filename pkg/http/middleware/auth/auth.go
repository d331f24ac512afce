package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/jmphair/order-up-midterm-project/pkg/http/httperr"
)

type ctxKey struct{}

// RequireToken rejects requests whose bearer token is not in the allowed
// set. A missing or unknown token always gets an explicit 401 body, never a
// silently dropped request.
func RequireToken(tokens []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		allowed[t] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httperr.Unauthorized(w, "missing bearer token")

				return
			}

			if _, ok := allowed[token]; !ok {
				httperr.Unauthorized(w, "unknown token")

				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, token)))
		})
	}
}

// TokenFromContext returns the authenticated actor token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxKey{}).(string)

	return token, ok
}
