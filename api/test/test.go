// Package test spins the whole API up against a throwaway storage directory
// and drives it through the HTTP surface, cookies included.
package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/chideraa89/first-attempt-ecommerce-site/api"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/cart"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/catalog"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/checkout"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/user"
	"github.com/chideraa89/first-attempt-ecommerce-site/notify"
	"github.com/chideraa89/first-attempt-ecommerce-site/rate"
	"github.com/chideraa89/first-attempt-ecommerce-site/storage"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	UserName  = "Test Shopper"
	UserEmail = "shopper@example.com"
	UserPass  = "secret1"
)

// Catalog fixture with prices picked to exercise the sorting and the
// free-shipping boundary.
func fixtureProducts() []catalog.Product {
	price := decimal.RequireFromString
	return []catalog.Product{
		{ID: 1, Name: "Alpha Speaker", Price: price("30"), OriginalPrice: price("60"), Category: "electronics", Rating: 4.0, Image: "img/1.jpg"},
		{ID: 2, Name: "Bravo Shirt", Price: price("10"), OriginalPrice: price("20"), Category: "fashion", Rating: 4.5, Image: "img/2.jpg"},
		{ID: 3, Name: "Charlie Lamp", Price: price("20"), OriginalPrice: price("25"), Category: "home", Rating: 3.5, Image: "img/3.jpg"},
		{ID: 4, Name: "Delta Keyboard", Price: price("50"), OriginalPrice: price("80"), Category: "computing", Rating: 5.0, Image: "img/4.jpg"},
		{ID: 5, Name: "Echo Monitor", Price: price("100.01"), OriginalPrice: price("150"), Category: "computing", Rating: 4.0, Image: "img/5.jpg"},
	}
}

type TestEnv struct {
	Server *httptest.Server
	URL    string

	Cart  *cart.Store
	Users *user.Store
	Hub   *notify.Hub

	client *http.Client
}

func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening storage: %v", err)
	}

	hub := notify.NewHub(logger, time.Minute, time.Second)

	cat := catalog.New(fixtureProducts())

	cartStore, err := cart.NewStore(store, hub)
	if err != nil {
		t.Fatalf("building cart store: %v", err)
	}

	users, err := user.NewStore(store)
	if err != nil {
		t.Fatalf("building account store: %v", err)
	}

	session := scs.New()
	session.Lifetime = time.Hour

	mux := api.APIMux(api.APIConfig{
		Log:           logger,
		Session:       session,
		Cart:          cartStore,
		Users:         users,
		Catalog:       cat,
		CatalogView:   catalog.NewView(cat, hub),
		Checkout:      checkout.New(cartStore, users, checkout.DefaultRules(), hub),
		Notifications: hub,
		AuthLimiter:   rate.NewLimiter(1000, 100, 1000),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("building cookie jar: %v", err)
	}

	return &TestEnv{
		Server: srv,
		URL:    srv.URL,
		Cart:   cartStore,
		Users:  users,
		Hub:    hub,
		client: &http.Client{Jar: jar},
	}
}

func (e *TestEnv) Client() *http.Client {
	return e.client
}

// do sends a JSON request and decodes the JSON response into out, which may
// be nil. It returns the status code.
func (e *TestEnv) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling %s %s body: %v", method, path, err)
		}
		buf = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, e.URL+path, buf)
	if err != nil {
		t.Fatalf("building %s %s: %v", method, path, err)
	}

	w, err := e.client.Do(r)
	if err != nil {
		t.Fatalf("sending %s %s: %v", method, path, err)
	}
	defer w.Body.Close()

	if out != nil && w.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, path, err)
		}
	}
	return w.StatusCode
}

func (e *TestEnv) signupOK(t *testing.T, name, email, password string) user.Info {
	t.Helper()

	var info user.Info
	status := e.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name":            name,
		"email":           email,
		"password":        password,
		"confirmPassword": password,
	}, &info)
	if status != http.StatusCreated {
		t.Fatalf("signup: status code %d", status)
	}
	return info
}

func (e *TestEnv) loginOK(t *testing.T, email, password string) user.Info {
	t.Helper()

	var info user.Info
	status := e.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &info)
	if status != http.StatusOK {
		t.Fatalf("login: status code %d", status)
	}
	return info
}

func (e *TestEnv) logoutOK(t *testing.T) {
	t.Helper()

	if status := e.do(t, http.MethodPost, "/auth/logout", nil, nil); status != http.StatusOK {
		t.Fatalf("logout: status code %d", status)
	}
}

func (e *TestEnv) addItemOK(t *testing.T, productID, quantity int) cart.Contents {
	t.Helper()

	var c cart.Contents
	status := e.do(t, http.MethodPut, "/cart/items", map[string]int{
		"productId": productID,
		"quantity":  quantity,
	}, &c)
	if status != http.StatusOK {
		t.Fatalf("adding item %d: status code %d", productID, status)
	}
	return c
}

func (e *TestEnv) notificationMessages() []string {
	var out []string
	for _, n := range e.Hub.Active() {
		out = append(out, n.Message)
	}
	return out
}

func errMessage(t *testing.T, body map[string]string) string {
	t.Helper()
	msg, ok := body["error"]
	if !ok {
		t.Fatalf("response has no error field: %v", body)
	}
	return msg
}
