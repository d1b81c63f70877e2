package main

import (
	"context"
	"net/http"

	"eventhub/auth"
)

type contextKey string

const identityKey contextKey = "identity"

const (
	loginPath        = "/login/"
	noPermissionPath = "/no-permission/"
)

// identityFromRequest resolves the requester's identity from the session
// cookie. Anything short of a valid session for an existing user yields the
// anonymous identity.
func (app *application) identityFromRequest(r *http.Request) auth.Identity {
	token := auth.TokenFromRequest(r)
	if token == "" {
		return auth.Identity{}
	}

	userID := app.Sessions.UserID(token)
	if userID == 0 {
		return auth.Identity{}
	}

	user, err := app.Repo.GetUserByID(userID)
	if err != nil {
		// Session outlived the user record.
		app.Sessions.Delete(token)
		return auth.Identity{}
	}

	roles, err := app.Repo.GetRoles(userID)
	if err != nil {
		return auth.Identity{}
	}

	return auth.NewIdentity(user, roles)
}

func identityFromContext(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(identityKey).(auth.Identity)
	return id
}

// RequireAuth gates a handler behind authentication. Unauthenticated
// requests redirect to the login path.
func (app *application) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := app.identityFromRequest(r)
		if !identity.Authenticated() {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole gates a handler behind authentication plus a role predicate.
// Authenticated requests failing the predicate redirect to the fixed
// no-permission page.
func (app *application) RequireRole(pred func(auth.Identity) bool, next http.HandlerFunc) http.HandlerFunc {
	return app.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if !pred(identityFromContext(r.Context())) {
			http.Redirect(w, r, noPermissionPath, http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}
