package controller

import (
	"net/http"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/cassiomorais/stripe-integration/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductController struct {
	products *service.ProductService
}

func NewProductController(products *service.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (h *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var req billing.CreateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.products.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var req billing.UpdateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	p, err := h.products.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page, err := listPageFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	active, err := boolQuery(r, "active")
	if err != nil {
		writeError(w, err)
		return
	}
	shippable, err := boolQuery(r, "shippable")
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.products.List(r.Context(), billing.ListProductsRequest{
		Active:    active,
		Shippable: shippable,
		ListPage:  page,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
