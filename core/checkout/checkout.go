// Package checkout derives the order summary from the current cart and runs
// the two-step checkout flow: begin (validated) and complete (always
// succeeds, clears the cart). There is no payment gateway; completion is
// deterministic.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/chideraa89/first-attempt-ecommerce-site/core/cart"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/user"
	"github.com/chideraa89/first-attempt-ecommerce-site/notify"
	"github.com/chideraa89/first-attempt-ecommerce-site/random"
	"github.com/shopspring/decimal"
)

var (
	// ErrCartEmpty rejects checkout on an empty cart.
	ErrCartEmpty = errors.New("your cart is empty")
	// ErrMustLogin rejects checkout without an active session.
	ErrMustLogin = errors.New("please login to checkout")
)

// Rules are the fixed business rules the summary is derived with. Shipping
// is free only when the subtotal strictly exceeds the threshold.
type Rules struct {
	FreeShippingOver decimal.Decimal
	ShippingFee      decimal.Decimal
	TaxRate          decimal.Decimal
}

func DefaultRules() Rules {
	return Rules{
		FreeShippingOver: decimal.NewFromInt(100),
		ShippingFee:      decimal.RequireFromString("9.99"),
		TaxRate:          decimal.RequireFromString("0.08"),
	}
}

// ParseRules builds Rules from decimal strings, as carried by configuration.
func ParseRules(freeShippingOver, shippingFee, taxRate string) (Rules, error) {
	over, err := decimal.NewFromString(freeShippingOver)
	if err != nil {
		return Rules{}, fmt.Errorf("parsing free shipping threshold %q: %w", freeShippingOver, err)
	}
	fee, err := decimal.NewFromString(shippingFee)
	if err != nil {
		return Rules{}, fmt.Errorf("parsing shipping fee %q: %w", shippingFee, err)
	}
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return Rules{}, fmt.Errorf("parsing tax rate %q: %w", taxRate, err)
	}
	return Rules{FreeShippingOver: over, ShippingFee: fee, TaxRate: rate}, nil
}

// Summary is the checkout totals, recomputed from the lines on every call,
// never cached.
type Summary struct {
	Items      []cart.Line     `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// Summarize derives the totals for a set of cart lines.
func Summarize(lines []cart.Line, r Rules) Summary {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	shipping := r.ShippingFee
	if subtotal.GreaterThan(r.FreeShippingOver) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(r.TaxRate).Round(2)

	return Summary{
		Items:      lines,
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal.Add(shipping).Add(tax),
	}
}

// Confirmation is the receipt for a completed checkout.
type Confirmation struct {
	Reference string    `json:"reference"`
	Summary   Summary   `json:"summary"`
	PlacedAt  time.Time `json:"placedAt"`
}

// System ties the cart and account stores to the checkout rules.
type System struct {
	cart     *cart.Store
	users    *user.Store
	rules    Rules
	notifier notify.Notifier
}

func New(c *cart.Store, u *user.Store, r Rules, n notify.Notifier) *System {
	return &System{cart: c, users: u, rules: r, notifier: n}
}

// Begin validates the checkout preconditions and derives the summary. A
// rejection carries a user-facing reason and is also published as a
// notification, matching the shop's behavior.
func (s *System) Begin() (Summary, error) {
	if err := s.check(); err != nil {
		return Summary{}, err
	}
	return Summarize(s.cart.Items(), s.rules), nil
}

// Complete places the order: it rechecks the preconditions, clears the cart
// and publishes the confirmation notice. Payment is out of scope, so a valid
// completion never fails.
func (s *System) Complete() (Confirmation, error) {
	if err := s.check(); err != nil {
		return Confirmation{}, err
	}

	summary := Summarize(s.cart.Items(), s.rules)
	if err := s.cart.Clear(); err != nil {
		return Confirmation{}, err
	}

	s.notifier.Notify("Order placed successfully! Thank you for shopping with us.")

	return Confirmation{
		Reference: random.String(10),
		Summary:   summary,
		PlacedAt:  time.Now().UTC(),
	}, nil
}

func (s *System) check() error {
	if s.cart.ItemCount() == 0 {
		s.notifier.Notify("Your cart is empty")
		return ErrCartEmpty
	}
	if _, ok := s.users.Current(); !ok {
		s.notifier.Notify("Please login to checkout")
		return ErrMustLogin
	}
	return nil
}
