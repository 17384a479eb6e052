package middleware

import (
	"context"
	"log"
	"net/http"

	"hootroost/app/auth"
	"hootroost/app/models"
	"hootroost/app/repositories"
)

type contextKey struct{}

var userKey = contextKey{}

// TokenVerifier resolves a bearer token to the user it identifies.
type TokenVerifier interface {
	Verify(token string) (*models.User, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller in the request context. The caller's profile is upserted so that
// responses can show usernames.
func Authenticate(verifier TokenVerifier, users repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := verifier.Verify(auth.BearerToken(r.Header.Get("Authorization")))
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if users != nil && user.Username != "" {
				if err := users.Upsert(r.Context(), user); err != nil {
					log.Printf("failed to record profile %s: %v", user.ID, err)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated caller, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
