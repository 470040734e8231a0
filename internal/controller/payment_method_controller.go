package controller

import (
	"net/http"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/cassiomorais/stripe-integration/internal/service"
	"github.com/go-chi/chi/v5"
)

type PaymentMethodController struct {
	paymentMethods *service.PaymentMethodService
}

func NewPaymentMethodController(paymentMethods *service.PaymentMethodService) *PaymentMethodController {
	return &PaymentMethodController{paymentMethods: paymentMethods}
}

func (h *PaymentMethodController) Create(w http.ResponseWriter, r *http.Request) {
	var req billing.CreatePaymentMethodRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	pm, err := h.paymentMethods.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pm)
}

func (h *PaymentMethodController) Get(w http.ResponseWriter, r *http.Request) {
	pm, err := h.paymentMethods.Get(r.Context(), chi.URLParam(r, "customerID"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pm)
}

func (h *PaymentMethodController) Update(w http.ResponseWriter, r *http.Request) {
	var req billing.UpdatePaymentMethodRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	pm, err := h.paymentMethods.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pm)
}

func (h *PaymentMethodController) Detach(w http.ResponseWriter, r *http.Request) {
	pm, err := h.paymentMethods.Detach(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pm)
}

func (h *PaymentMethodController) List(w http.ResponseWriter, r *http.Request) {
	page, err := listPageFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	methods, err := h.paymentMethods.List(r.Context(), chi.URLParam(r, "customerID"), page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, methods)
}

func (h *PaymentMethodController) SetDefault(w http.ResponseWriter, r *http.Request) {
	pm, err := h.paymentMethods.SetDefault(r.Context(), chi.URLParam(r, "customerID"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pm)
}
