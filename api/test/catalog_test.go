package test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type productView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func listIDs(products []productView) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestProductListAndFilter(t *testing.T) {
	env := NewTestEnv(t)

	var products []productView
	if status := env.do(t, http.MethodGet, "/products", nil, &products); status != http.StatusOK {
		t.Fatalf("listing products: status code %d", status)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, listIDs(products)); diff != "" {
		t.Fatalf("featured order mismatch (-want +got):\n%s", diff)
	}

	if status := env.do(t, http.MethodPut, "/products/filter", map[string]any{
		"sort": "price-low",
	}, &products); status != http.StatusOK {
		t.Fatalf("applying filter: status code %d", status)
	}
	if diff := cmp.Diff([]int{2, 3, 1, 4, 5}, listIDs(products)); diff != "" {
		t.Fatalf("price-low order mismatch (-want +got):\n%s", diff)
	}

	if status := env.do(t, http.MethodPut, "/products/filter", map[string]any{
		"category": "computing",
		"sort":     "price-high",
	}, &products); status != http.StatusOK {
		t.Fatalf("applying filter: status code %d", status)
	}
	if diff := cmp.Diff([]int{5, 4}, listIDs(products)); diff != "" {
		t.Fatalf("computing price-high mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterRejectsInvertedRange(t *testing.T) {
	env := NewTestEnv(t)

	if status := env.do(t, http.MethodPut, "/products/filter", map[string]any{
		"category": "fashion",
	}, nil); status != http.StatusOK {
		t.Fatalf("applying filter: status code %d", status)
	}

	status := env.do(t, http.MethodPut, "/products/filter", map[string]any{
		"minPrice": 50,
		"maxPrice": 10,
	}, nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("inverted range: status code %d", status)
	}

	// Previous filter state retained.
	var products []productView
	if status := env.do(t, http.MethodGet, "/products", nil, &products); status != http.StatusOK {
		t.Fatalf("listing products: status code %d", status)
	}
	if diff := cmp.Diff([]int{2}, listIDs(products)); diff != "" {
		t.Fatalf("filter state changed by rejected range (-want +got):\n%s", diff)
	}

	found := false
	for _, msg := range env.notificationMessages() {
		if msg == "Minimum price cannot be greater than maximum price" {
			found = true
		}
	}
	if !found {
		t.Fatalf("rejection did not publish a notification: %v", env.notificationMessages())
	}
}

func TestProductSearch(t *testing.T) {
	env := NewTestEnv(t)

	var products []productView
	if status := env.do(t, http.MethodGet, "/products?search=bravo", nil, &products); status != http.StatusOK {
		t.Fatalf("searching products: status code %d", status)
	}
	if diff := cmp.Diff([]int{2}, listIDs(products)); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestProductShow(t *testing.T) {
	env := NewTestEnv(t)

	var p struct {
		productView
		CategoryName string `json:"categoryName"`
		Discount     int    `json:"discount"`
	}
	if status := env.do(t, http.MethodGet, "/products/1", nil, &p); status != http.StatusOK {
		t.Fatalf("showing product: status code %d", status)
	}
	if p.Name != "Alpha Speaker" || p.CategoryName != "Electronics" || p.Discount != 50 {
		t.Fatalf("product detail mismatch: %+v", p)
	}

	if status := env.do(t, http.MethodGet, "/products/999", nil, nil); status != http.StatusNotFound {
		t.Fatalf("unknown product: status code %d", status)
	}
}
