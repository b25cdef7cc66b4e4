package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/chideraa89/first-attempt-ecommerce-site/api/web"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/weberr"
)

func reject(err error) error {
	if errors.Is(err, ErrMustLogin) {
		return weberr.NewError(err, err.Error(), http.StatusUnauthorized)
	}
	if errors.Is(err, ErrCartEmpty) {
		return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
	}
	return err
}

func HandleBegin(s *System) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		summary, err := s.Begin()
		if err != nil {
			return reject(err)
		}
		return web.Respond(ctx, w, summary, http.StatusOK)
	}
}

func HandleComplete(s *System) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		conf, err := s.Complete()
		if err != nil {
			return reject(err)
		}
		return web.Respond(ctx, w, conf, http.StatusOK)
	}
}
