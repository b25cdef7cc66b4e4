package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/chideraa89/first-attempt-ecommerce-site/api/web"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/weberr"
	"github.com/chideraa89/first-attempt-ecommerce-site/rate"
)

// RateLimit throttles per client address. It guards the account endpoints
// against credential stuffing of the stored user list.
func RateLimit(limiter *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !limiter.Check(host) {
				return weberr.NewError(
					errors.New("rate limit exceeded"),
					"too many requests, slow down",
					http.StatusTooManyRequests,
				)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
