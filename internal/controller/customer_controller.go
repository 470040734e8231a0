package controller

import (
	"net/http"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/cassiomorais/stripe-integration/internal/service"
	"github.com/go-chi/chi/v5"
)

type CustomerController struct {
	customers *service.CustomerService
}

func NewCustomerController(customers *service.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

func (h *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var req billing.CreateCustomerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.customers.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (h *CustomerController) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	var req billing.UpdateCustomerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	c, err := h.customers.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	page, err := listPageFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	customers, err := h.customers.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}
