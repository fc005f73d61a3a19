package middleware

import (
	"context"
	"net/http"

	"hive-social-network/logging"
	"hive-social-network/models"
	"hive-social-network/util"
)

// UserKeyType is the type of the context key holding the acting user.
type UserKeyType string

const UserKey UserKeyType = "user"

// IdentityResolver maps an external identity token to a user.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*models.User, error)
}

// ErrorResponder writes err to the client.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// Identity resolves the identity token of every request to a user and puts
// the user in the request context. Requests whose token is missing or
// unknown are answered by fail and never reach next.
func Identity(resolver IdentityResolver, fail ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := util.IdentityTokenFromRequest(r)
			user, err := resolver.ResolveIdentity(r.Context(), token)
			if err != nil {
				logging.Ctx(r.Context()).Debug().
					Str("identity", util.Fingerprint(token)).
					Str("path", r.URL.Path).
					Err(err).
					Msg("Identity resolution failed")
				fail(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the user placed in ctx by Identity.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(UserKey).(*models.User)
	return u, ok && u != nil
}
