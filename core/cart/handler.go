package cart

import (
	"context"
	"errors"
	"net/http"

	"github.com/chideraa89/first-attempt-ecommerce-site/api/web"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/weberr"
	"github.com/chideraa89/first-attempt-ecommerce-site/core/catalog"
	"github.com/chideraa89/first-attempt-ecommerce-site/validate"
	"github.com/shopspring/decimal"
)

// ItemNew is the payload for putting a product into the cart. Quantity
// defaults to one when omitted.
type ItemNew struct {
	ProductID int `json:"productId" validate:"required"`
	Quantity  int `json:"quantity" validate:"omitempty,gte=1"`
}

// ItemUp is the payload for setting a line's quantity. Zero and negative
// values remove the line.
type ItemUp struct {
	Quantity int `json:"quantity"`
}

// Contents is the cart as rendered to clients: lines plus the derived badge
// count and total, recomputed on every read.
type Contents struct {
	Items []Line          `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func contents(s *Store) Contents {
	return Contents{
		Items: s.Items(),
		Count: s.ItemCount(),
		Total: s.Total(),
	}
}

func HandleShow(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, contents(s), http.StatusOK)
	}
}

func HandleAddItem(s *Store, cat *catalog.Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		p, ok := cat.Product(in.ProductID)
		if !ok {
			return weberr.NotFound(errors.New("product not in catalog"))
		}

		qty := in.Quantity
		if qty == 0 {
			qty = 1
		}

		if err := s.AddItem(p.ID, p.Name, p.Price, p.Image, qty); err != nil {
			return err
		}

		return web.Respond(ctx, w, contents(s), http.StatusOK)
	}
}

func HandleUpdateItem(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamInt(r, "product_id")
		if err != nil {
			return weberr.BadRequest(err)
		}

		var in ItemUp
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := s.UpdateQuantity(id, in.Quantity); err != nil {
			return err
		}

		return web.Respond(ctx, w, contents(s), http.StatusOK)
	}
}

func HandleDeleteItem(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamInt(r, "product_id")
		if err != nil {
			return weberr.BadRequest(err)
		}

		if err := s.RemoveItem(id); err != nil {
			return err
		}

		return web.Respond(ctx, w, contents(s), http.StatusOK)
	}
}

func HandleDelete(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := s.Clear(); err != nil {
			return err
		}
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// WishlistView carries the wishlisted ids and the badge count.
type WishlistView struct {
	Items []int `json:"items"`
	Count int   `json:"count"`
}

func HandleWishlist(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		view := WishlistView{Items: s.Wishlist(), Count: s.WishlistCount()}
		return web.Respond(ctx, w, view, http.StatusOK)
	}
}

func HandleToggleWishlist(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamInt(r, "product_id")
		if err != nil {
			return weberr.BadRequest(err)
		}

		added, err := s.ToggleWishlist(id)
		if err != nil {
			return err
		}

		out := struct {
			Added bool `json:"added"`
			Count int  `json:"count"`
		}{Added: added, Count: s.WishlistCount()}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}
