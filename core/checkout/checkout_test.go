package checkout_test

import (
	"encoding/json"
	"testing"

	"github.com/chideraa89/first-attempt-ecommerce-site/core/cart"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/checkout"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	saved map[string]json.RawMessage
}

func newMemStorage() *memStorage {
	return &memStorage{saved: make(map[string]json.RawMessage)}
}

func (m *memStorage) Save(key string, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	m.saved[key] = b
	return nil
}

func (m *memStorage) Load(key string, val any) (bool, error) {
	b, ok := m.saved[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, val)
}

func (m *memStorage) Delete(key string) error {
	delete(m.saved, key)
	return nil
}

type memNotifier struct {
	messages []string
}

func (m *memNotifier) Notify(message string) {
	m.messages = append(m.messages, message)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(id int, p string, qty int) cart.Line {
	return cart.Line{ProductID: id, Name: "p", UnitPrice: price(p), Quantity: qty}
}

func TestSummarizeShippingBoundary(t *testing.T) {
	rules := checkout.DefaultRules()

	// Exactly 100 still pays shipping; the threshold is strict.
	s := checkout.Summarize([]cart.Line{line(1, "50", 2)}, rules)
	require.True(t, s.Subtotal.Equal(price("100")))
	require.True(t, s.Shipping.Equal(price("9.99")))
	require.True(t, s.Tax.Equal(price("8.00")))
	require.True(t, s.GrandTotal.Equal(price("117.99")))

	// One cent over crosses it.
	s = checkout.Summarize([]cart.Line{line(1, "100.01", 1)}, rules)
	require.True(t, s.Shipping.IsZero())
	require.True(t, s.Tax.Equal(price("8.00")))
	require.True(t, s.GrandTotal.Equal(price("108.01")))
}

func TestSummarizeEmpty(t *testing.T) {
	s := checkout.Summarize(nil, checkout.DefaultRules())
	require.True(t, s.Subtotal.IsZero())
	require.True(t, s.Shipping.Equal(price("9.99")))
	require.True(t, s.Tax.IsZero())
}

func newSystem(t *testing.T) (*checkout.System, *cart.Store, *user.Store, *memNotifier) {
	t.Helper()
	st := newMemStorage()
	n := &memNotifier{}

	c, err := cart.NewStore(st, n)
	require.NoError(t, err)
	u, err := user.NewStore(st)
	require.NoError(t, err)

	return checkout.New(c, u, checkout.DefaultRules(), n), c, u, n
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	sys, _, u, n := newSystem(t)
	_, err := u.Register("Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	n.messages = nil

	_, err = sys.Begin()
	require.ErrorIs(t, err, checkout.ErrCartEmpty)
	require.Contains(t, n.messages, "Your cart is empty")
}

func TestBeginRejectsWithoutSession(t *testing.T) {
	sys, c, _, n := newSystem(t)
	require.NoError(t, c.AddItem(1, "a", price("10"), "", 1))
	n.messages = nil

	_, err := sys.Begin()
	require.ErrorIs(t, err, checkout.ErrMustLogin)
	require.Contains(t, n.messages, "Please login to checkout")
}

func TestCompleteClearsCart(t *testing.T) {
	sys, c, u, n := newSystem(t)
	_, err := u.Register("Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(1, "a", price("60"), "", 2))

	summary, err := sys.Begin()
	require.NoError(t, err)
	require.True(t, summary.Subtotal.Equal(price("120")))
	require.True(t, summary.Shipping.IsZero())

	conf, err := sys.Complete()
	require.NoError(t, err)
	require.Len(t, conf.Reference, 10)
	require.True(t, conf.Summary.Subtotal.Equal(price("120")))

	require.Equal(t, 0, c.ItemCount())
	require.Contains(t, n.messages, "Order placed successfully! Thank you for shopping with us.")

	// The flow is closed: a second completion is an empty-cart rejection.
	_, err = sys.Complete()
	require.ErrorIs(t, err, checkout.ErrCartEmpty)
}
