package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/middleware"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/web"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/auth"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/cart"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/catalog"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/checkout"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/user"
	"github.com/chideraa89/first-attempt-ecommerce-site/notify"
	"github.com/chideraa89/first-attempt-ecommerce-site/rate"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin    string
	Log           logrus.FieldLogger
	Session       *scs.SessionManager
	Cart          *cart.Store
	Users         *user.Store
	Catalog       *catalog.Catalog
	CatalogView   *catalog.View
	Checkout      *checkout.System
	Notifications *notify.Hub
	AuthLimiter   *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session, cfg.Users)
	limited := middleware.RateLimit(cfg.AuthLimiter)

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.Users, cfg.Session), limited)
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.Users, cfg.Session), limited)
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Users, cfg.Session))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.Users), authen)

	a.Handle(http.MethodGet, "/products/{id:[0-9]+}", catalog.HandleShow(cfg.Catalog))
	a.Handle(http.MethodGet, "/products", catalog.HandleList(cfg.CatalogView))
	a.Handle(http.MethodPut, "/products/filter", catalog.HandleApplyFilter(cfg.CatalogView))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.Cart))
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.Cart))
	a.Handle(http.MethodPut, "/cart/items", cart.HandleAddItem(cfg.Cart, cfg.Catalog))
	a.Handle(http.MethodPut, "/cart/items/{product_id}", cart.HandleUpdateItem(cfg.Cart))
	a.Handle(http.MethodDelete, "/cart/items/{product_id}", cart.HandleDeleteItem(cfg.Cart))

	a.Handle(http.MethodGet, "/wishlist", cart.HandleWishlist(cfg.Cart))
	a.Handle(http.MethodPut, "/wishlist/{product_id}", cart.HandleToggleWishlist(cfg.Cart))

	a.Handle(http.MethodPost, "/checkout", checkout.HandleBegin(cfg.Checkout))
	a.Handle(http.MethodPost, "/checkout/complete", checkout.HandleComplete(cfg.Checkout))

	a.Handle(http.MethodGet, "/notifications", notify.HandleList(cfg.Notifications))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
