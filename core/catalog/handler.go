package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/chideraa89/first-attempt-ecommerce-site/api/web"
	"github.com/chideraa89/first-attempt-ecommerce-site/api/weberr"
	"github.com/chideraa89/first-attempt-ecommerce-site/validate"
	"github.com/shopspring/decimal"
)

// FilterNew is the payload for applying a filter. Omitted fields fall back
// to the defaults the shop front loads with.
type FilterNew struct {
	Category string           `json:"category"`
	Sort     string           `json:"sort" validate:"omitempty,oneof=featured price-low price-high rating newest"`
	MinPrice *decimal.Decimal `json:"minPrice"`
	MaxPrice *decimal.Decimal `json:"maxPrice"`
}

func (in FilterNew) filter() Filter {
	f := DefaultFilter()
	if in.Category != "" {
		f.Category = in.Category
	}
	if in.Sort != "" {
		f.Sort = in.Sort
	}
	if in.MinPrice != nil {
		f.MinPrice = *in.MinPrice
	}
	if in.MaxPrice != nil {
		f.MaxPrice = *in.MaxPrice
	}
	return f
}

func HandleList(v *View) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		products := v.Products()
		if term := web.QueryParam(r, "search"); term != "" {
			products = Search(products, term)
		}
		return web.Respond(ctx, w, products, http.StatusOK)
	}
}

func HandleApplyFilter(v *View) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in FilterNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := v.SetFilter(in.filter()); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		return web.Respond(ctx, w, v.Products(), http.StatusOK)
	}
}

func HandleShow(c *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamInt(r, "id")
		if err != nil {
			return weberr.BadRequest(err)
		}

		p, ok := c.Product(id)
		if !ok {
			return weberr.NotFound(errors.New("product not in catalog"))
		}

		out := struct {
			Product
			CategoryName string `json:"categoryName"`
			Discount     int    `json:"discount"`
		}{Product: p, CategoryName: CategoryName(p.Category), Discount: p.Discount()}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}
