package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/chideraa89/first-attempt-ecommerce-site/api"
	"github.com/chideraa89/first-attempt-ecommerce-site/config"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/cart"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/catalog"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/checkout"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/user"
	"github.com/chideraa89/first-attempt-ecommerce-site/notify"
	"github.com/chideraa89/first-attempt-ecommerce-site/rate"
	"github.com/chideraa89/first-attempt-ecommerce-site/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting server")
	defer logger.Info("shutdown complete")

	const prefix = "SHOPEASY"
	var cfg config.Config
	if _, err := conf.Parse(prefix, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	store, err := storage.Open(cfg.Store.Dir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	hub := notify.NewHub(logger, cfg.Notify.Visible, cfg.Notify.Exit)

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("failed to load the product catalog: %w", err)
	}

	cartStore, err := cart.NewStore(store, hub)
	if err != nil {
		return fmt.Errorf("failed to load the cart store: %w", err)
	}

	users, err := user.NewStore(store)
	if err != nil {
		return fmt.Errorf("failed to load the account store: %w", err)
	}

	rules, err := checkout.ParseRules(cfg.Checkout.FreeShippingOver, cfg.Checkout.ShippingFee, cfg.Checkout.TaxRate)
	if err != nil {
		return fmt.Errorf("failed to parse checkout rules: %w", err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime

	authLimiter := rate.NewLimiter(cfg.Auth.LimitBurst, cfg.Auth.LimitExpiry, cfg.Auth.LimitRPS)

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:    cfg.Cors.Origin,
		Log:           logger,
		Session:       sessionManager,
		Cart:          cartStore,
		Users:         users,
		Catalog:       cat,
		CatalogView:   catalog.NewView(cat, hub),
		Checkout:      checkout.New(cartStore, users, rules, hub),
		Notifications: hub,
		AuthLimiter:   authLimiter,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

func loadCatalog(cfg config.Catalog) (*catalog.Catalog, error) {
	if cfg.Path != "" {
		return catalog.LoadFile(cfg.Path)
	}
	return catalog.Load()
}
