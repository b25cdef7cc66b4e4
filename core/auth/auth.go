// Package auth wires the account store to the HTTP surface: session
// management through scs, the signup/login/logout handlers and the
// Authenticate middleware. The account flow here is a convenience, not a
// security boundary; see core/user.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/web"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/weberr"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/claims"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/user"
	"github.com/chideraa89/first-attempt-ecommerce-site/validate"
)

const userIDKey = "userID"

// LoadAndSave adapts the scs cookie middleware to the web.Handler chain.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			h := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}))
			h.ServeHTTP(w, r)

			return err
		}
	}
}

// Authenticate requires the request's session cookie to match the store's
// active session and puts the user's claims on the context.
func Authenticate(session *scs.SessionManager, users *user.Store) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := session.GetInt64(ctx, userIDKey)
			if id == 0 {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			u, ok := users.Current()
			if !ok || u.ID != id {
				return weberr.NotAuthorized(errors.New("session no longer active"))
			}

			ctx = claims.Set(ctx, claims.Claims{UserID: u.ID, Email: u.Email})
			return handler(ctx, w, r)
		}
	}
}

// SignupNew mirrors the registration form: the password rules live here at
// the presentation boundary, not in the account store.
type SignupNew struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func HandleSignup(users *user.Store, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in SignupNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		res, err := users.Register(in.Name, in.Email, in.Password)
		if err != nil {
			return err
		}
		if !res.Success {
			return weberr.NewError(errors.New(res.Message), res.Message, http.StatusUnprocessableEntity)
		}

		return bind(ctx, w, users, session, http.StatusCreated)
	}
}

func HandleLogin(users *user.Store, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in Credentials
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		res, err := users.Login(in.Email, in.Password)
		if err != nil {
			return err
		}
		if !res.Success {
			return weberr.NewError(errors.New(res.Message), res.Message, http.StatusUnauthorized)
		}

		return bind(ctx, w, users, session, http.StatusOK)
	}
}

func HandleLogout(users *user.Store, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		res, err := users.Logout()
		if err != nil {
			return err
		}

		if err := session.Destroy(ctx); err != nil {
			return err
		}

		return web.Respond(ctx, w, res, http.StatusOK)
	}
}

// bind renews the session token and ties it to the freshly logged-in user.
func bind(ctx context.Context, w http.ResponseWriter, users *user.Store, session *scs.SessionManager, status int) error {
	u, ok := users.Current()
	if !ok {
		return errors.New("login reported success but no session is active")
	}

	if err := session.RenewToken(ctx); err != nil {
		return err
	}
	session.Put(ctx, userIDKey, u.ID)

	return web.Respond(ctx, w, u.Info(), status)
}
