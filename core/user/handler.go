package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/chideraa89/first-attempt-ecommerce-site/api/web"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/weberr"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/claims"
)

func HandleShowCurrent(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if _, err := claims.Get(ctx); err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		u, ok := s.Current()
		if !ok || !claims.IsUser(ctx, u.ID) {
			return weberr.NotAuthorized(errors.New("session no longer active"))
		}

		return web.Respond(ctx, w, u.Info(), http.StatusOK)
	}
}
