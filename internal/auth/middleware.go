package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type claimsKey struct{}

// ClaimsFrom returns the verified claims stored by RequireScope.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// RequireScope rejects requests without a valid bearer token carrying scope.
func RequireScope(svc *TokenService, scope string, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				http.Error(w, "missing_token", http.StatusUnauthorized)
				return
			}
			claims, err := svc.Verify(strings.TrimSpace(header[len("bearer "):]))
			if err != nil {
				logger.Debugw("rejected admin token", "err", err)
				http.Error(w, "invalid_token", http.StatusUnauthorized)
				return
			}
			if !claims.HasScope(scope) {
				logger.Warnw("admin token lacks scope", "sub", claims.Subject, "scope", scope)
				http.Error(w, "insufficient_scope", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}
