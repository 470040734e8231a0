package controller

import (
	"net/http"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	"github.com/cassiomorais/stripe-integration/internal/service"
	"github.com/go-chi/chi/v5"
)

type PaymentIntentController struct {
	paymentIntents *service.PaymentIntentService
}

func NewPaymentIntentController(paymentIntents *service.PaymentIntentService) *PaymentIntentController {
	return &PaymentIntentController{paymentIntents: paymentIntents}
}

func (h *PaymentIntentController) Create(w http.ResponseWriter, r *http.Request) {
	var req billing.CreatePaymentIntentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.CustomerID = chi.URLParam(r, "customerID")

	pi, err := h.paymentIntents.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pi)
}

func (h *PaymentIntentController) Get(w http.ResponseWriter, r *http.Request) {
	pi, err := h.paymentIntents.Get(r.Context(), chi.URLParam(r, "customerID"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pi)
}

func (h *PaymentIntentController) List(w http.ResponseWriter, r *http.Request) {
	page, err := listPageFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	intents, err := h.paymentIntents.List(r.Context(), chi.URLParam(r, "customerID"), page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, intents)
}
