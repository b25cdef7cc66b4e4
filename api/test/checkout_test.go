package test

import (
	"net/http"
	"testing"

	"github.com/chideraa89/first-attempt-ecommerce-site/core/cart"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/checkout"
	"github.com/shopspring/decimal"
)

func TestCheckoutRequiresLogin(t *testing.T) {
	env := NewTestEnv(t)

	env.addItemOK(t, 1, 1)

	var body map[string]string
	if status := env.do(t, http.MethodPost, "/checkout", nil, &body); status != http.StatusUnauthorized {
		t.Fatalf("checkout without login: status code %d", status)
	}
	if errMessage(t, body) != "please login to checkout" {
		t.Fatalf("checkout rejection message %q", errMessage(t, body))
	}
}

func TestCheckoutRequiresItems(t *testing.T) {
	env := NewTestEnv(t)

	env.signupOK(t, UserName, UserEmail, UserPass)

	var body map[string]string
	if status := env.do(t, http.MethodPost, "/checkout", nil, &body); status != http.StatusUnprocessableEntity {
		t.Fatalf("checkout with empty cart: status code %d", status)
	}
	if errMessage(t, body) != "your cart is empty" {
		t.Fatalf("checkout rejection message %q", errMessage(t, body))
	}
}

func TestCheckoutFlow(t *testing.T) {
	env := NewTestEnv(t)
	price := decimal.RequireFromString

	env.signupOK(t, UserName, UserEmail, UserPass)

	// Two Delta Keyboards at 50: subtotal exactly 100 still pays shipping.
	env.addItemOK(t, 4, 2)

	var summary checkout.Summary
	if status := env.do(t, http.MethodPost, "/checkout", nil, &summary); status != http.StatusOK {
		t.Fatalf("beginning checkout: status code %d", status)
	}
	if !summary.Subtotal.Equal(price("100")) {
		t.Fatalf("subtotal %s, want 100", summary.Subtotal)
	}
	if !summary.Shipping.Equal(price("9.99")) {
		t.Fatalf("shipping %s at subtotal 100, want 9.99", summary.Shipping)
	}
	if !summary.Tax.Equal(price("8.00")) {
		t.Fatalf("tax %s, want 8.00", summary.Tax)
	}
	if !summary.GrandTotal.Equal(price("117.99")) {
		t.Fatalf("grand total %s, want 117.99", summary.GrandTotal)
	}

	var conf checkout.Confirmation
	if status := env.do(t, http.MethodPost, "/checkout/complete", nil, &conf); status != http.StatusOK {
		t.Fatalf("completing checkout: status code %d", status)
	}
	if len(conf.Reference) != 10 {
		t.Fatalf("confirmation reference %q", conf.Reference)
	}

	var c cart.Contents
	if status := env.do(t, http.MethodGet, "/cart", nil, &c); status != http.StatusOK {
		t.Fatalf("showing cart: status code %d", status)
	}
	if c.Count != 0 {
		t.Fatalf("cart count %d after checkout, want 0", c.Count)
	}
}

func TestCheckoutFreeShippingOverThreshold(t *testing.T) {
	env := NewTestEnv(t)
	price := decimal.RequireFromString

	env.signupOK(t, UserName, UserEmail, UserPass)

	// One cent past the threshold ships free.
	env.addItemOK(t, 5, 1)

	var summary checkout.Summary
	if status := env.do(t, http.MethodPost, "/checkout", nil, &summary); status != http.StatusOK {
		t.Fatalf("beginning checkout: status code %d", status)
	}
	if !summary.Shipping.IsZero() {
		t.Fatalf("shipping %s at subtotal 100.01, want 0", summary.Shipping)
	}
	if !summary.GrandTotal.Equal(price("108.01")) {
		t.Fatalf("grand total %s, want 108.01", summary.GrandTotal)
	}
}
