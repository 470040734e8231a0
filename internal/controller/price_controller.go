package controller

import (
	"net/http"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/cassiomorais/stripe-integration/internal/service"
	"github.com/go-chi/chi/v5"
)

type PriceController struct {
	prices *service.PriceService
}

func NewPriceController(prices *service.PriceService) *PriceController {
	return &PriceController{prices: prices}
}

func (h *PriceController) Create(w http.ResponseWriter, r *http.Request) {
	var req billing.CreatePriceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.prices.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *PriceController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.prices.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *PriceController) Update(w http.ResponseWriter, r *http.Request) {
	var req billing.UpdatePriceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	p, err := h.prices.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *PriceController) List(w http.ResponseWriter, r *http.Request) {
	req, err := listPricesRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	prices, err := h.prices.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prices)
}

// ListForProduct serves the product-scoped price listing; the product id
// comes from the URL instead of the query string.
func (h *PriceController) ListForProduct(w http.ResponseWriter, r *http.Request) {
	req, err := listPricesRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req.ProductID = chi.URLParam(r, "id")

	prices, err := h.prices.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prices)
}

func listPricesRequest(r *http.Request) (billing.ListPricesRequest, error) {
	var req billing.ListPricesRequest

	page, err := listPageFromQuery(r)
	if err != nil {
		return req, err
	}
	active, err := boolQuery(r, "active")
	if err != nil {
		return req, err
	}

	req.ListPage = page
	req.Active = active
	req.ProductID = r.URL.Query().Get("product_id")
	if t := r.URL.Query().Get("type"); t != "" {
		req.Type = &t
	}
	return req, nil
}
