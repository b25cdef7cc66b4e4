// Package config declares the server configuration, parsed from the
// environment with the SHOPEASY prefix.
package config

import "time"

type Config struct {
	Web      Web
	Cors     Cors
	Store    Store
	Catalog  Catalog
	Session  Session
	Checkout Checkout
	Notify   Notify
	Auth     Auth
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:3000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type Store struct {
	Dir string `conf:"default:data"`
}

type Catalog struct {
	// Path to an external product catalog; empty uses the embedded one.
	Path string
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

// Checkout carries the business rules as decimal strings to avoid float
// drift on money values.
type Checkout struct {
	FreeShippingOver string `conf:"default:100"`
	ShippingFee      string `conf:"default:9.99"`
	TaxRate          string `conf:"default:0.08"`
}

type Notify struct {
	Visible time.Duration `conf:"default:3s"`
	Exit    time.Duration `conf:"default:300ms"`
}

// Auth throttles the signup and login endpoints per client address.
type Auth struct {
	LimitBurst  int     `conf:"default:5"`
	LimitRPS    float64 `conf:"default:1"`
	LimitExpiry int     `conf:"default:60"`
}
