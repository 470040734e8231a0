package controller

import (
	"net/http"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/service"
	"github.com/go-chi/chi/v5"
)

type SubscriptionController struct {
	subscriptions *service.SubscriptionService
}

func NewSubscriptionController(subscriptions *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptions: subscriptions}
}

func (h *SubscriptionController) Create(w http.ResponseWriter, r *http.Request) {
	var req billing.CreateSubscriptionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.subscriptions.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

func (h *SubscriptionController) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subscriptions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionController) Update(w http.ResponseWriter, r *http.Request) {
	var req billing.UpdateSubscriptionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	sub, err := h.subscriptions.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// Cancel is exposed as DELETE but returns the canceled subscription
// body, mirroring the provider's cancellation semantics.
func (h *SubscriptionController) Cancel(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subscriptions.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionController) List(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		writeError(w, domainErrors.NewValidationError("customer_id", "required"))
		return
	}

	page, err := listPageFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	req := billing.ListSubscriptionsRequest{CustomerID: customerID, ListPage: page}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	subs, err := h.subscriptions.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}
