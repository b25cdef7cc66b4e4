// Package cart owns the shopping cart line items and the wishlist id set.
// Mutations never fail on their own: absent ids are silent no-ops and no
// bounds are enforced beyond the quantity >= 1 line invariant. The only
// errors surfaced are persistence failures, which propagate to the caller
// untouched.
package cart

import (
	"fmt"
	"sync"

	"github.com/chideraa89/first-attempt-ecommerce-site/notify"
	"github.com/shopspring/decimal"
)

const (
	cartKey     = "cart"
	wishlistKey = "wishlist"
)

// Line is one product's entry in the cart. A product appears at most once;
// repeat adds accumulate into Quantity.
type Line struct {
	ProductID int             `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Storage is the slice of the persistence layer the cart needs.
type Storage interface {
	Save(key string, val any) error
	Load(key string, val any) (bool, error)
}

type Store struct {
	storage  Storage
	notifier notify.Notifier

	mu       sync.Mutex
	lines    []Line
	wishlist []int
}

// NewStore loads the persisted cart and wishlist, if any, and returns the
// store ready for use.
func NewStore(st Storage, n notify.Notifier) (*Store, error) {
	s := &Store{storage: st, notifier: n}

	if _, err := st.Load(cartKey, &s.lines); err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if _, err := st.Load(wishlistKey, &s.wishlist); err != nil {
		return nil, fmt.Errorf("loading wishlist: %w", err)
	}
	return s, nil
}

// AddItem puts quantity units of a product into the cart. An existing line
// for the product is incremented, otherwise a new line is appended at the
// end, preserving insertion order for display.
func (s *Store) AddItem(productID int, name string, unitPrice decimal.Decimal, image string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = addLine(s.lines, Line{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Image:     image,
		Quantity:  quantity,
	})

	if err := s.storage.Save(cartKey, s.lines); err != nil {
		return err
	}

	s.notifier.Notify(fmt.Sprintf("%s added to cart", name))
	return nil
}

// RemoveItem drops the line for the product. Removing an absent product is a
// silent no-op, though the removal notification is still published, matching
// the storefront's observable behavior.
func (s *Store) RemoveItem(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = removeLine(s.lines, productID)

	if err := s.storage.Save(cartKey, s.lines); err != nil {
		return err
	}

	s.notifier.Notify("Item removed from cart")
	return nil
}

// UpdateQuantity sets the line's quantity to exactly quantity, unlike
// AddItem which increments. A quantity below 1 removes the line entirely.
// Quantity-only changes publish no notification.
func (s *Store) UpdateQuantity(productID, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = setQuantity(s.lines, productID, quantity)
	return s.storage.Save(cartKey, s.lines)
}

// Clear empties the cart. Checkout completion ends with this.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.storage.Save(cartKey, []Line{})
}

// Total is the recomputed sum of unit price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.lines)
}

// ItemCount is the recomputed sum of quantities over all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// ToggleWishlist flips the product's wishlist membership and reports true
// when the product was added.
func (s *Store) ToggleWishlist(productID int) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, id := range s.wishlist {
		if id == productID {
			idx = i
			break
		}
	}

	if idx == -1 {
		s.wishlist = append(s.wishlist, productID)
		added = true
	} else {
		s.wishlist = append(s.wishlist[:idx], s.wishlist[idx+1:]...)
	}

	if err := s.storage.Save(wishlistKey, s.wishlist); err != nil {
		return false, err
	}

	if added {
		s.notifier.Notify("Added to wishlist")
	} else {
		s.notifier.Notify("Removed from wishlist")
	}
	return added, nil
}

// InWishlist reports the product's wishlist membership.
func (s *Store) InWishlist(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// Wishlist returns a copy of the wishlisted product ids.
func (s *Store) Wishlist() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// WishlistCount returns the number of wishlisted products.
func (s *Store) WishlistCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wishlist)
}

// The transition functions below are pure so the cart logic stays testable
// without a storage backend.

func addLine(lines []Line, l Line) []Line {
	for i := range lines {
		if lines[i].ProductID == l.ProductID {
			lines[i].Quantity += l.Quantity
			return lines
		}
	}
	return append(lines, l)
}

func removeLine(lines []Line, productID int) []Line {
	for i := range lines {
		if lines[i].ProductID == productID {
			return append(lines[:i], lines[i+1:]...)
		}
	}
	return lines
}

func setQuantity(lines []Line, productID, quantity int) []Line {
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			break
		}
	}
	return lines
}

func total(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}
