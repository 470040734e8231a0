package controller

import (
	"context"
	"net/http"
	"strconv"

	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"
	"github.com/cassiomorais/stripe-integration/internal/repository/postgres"
	"github.com/go-chi/chi/v5"
)

// MirrorReader serves reads from the provider mirror table.
// *postgres.MirrorRepository satisfies it.
type MirrorReader interface {
	Get(ctx context.Context, resource, id string) (*postgres.MirrorRecord, error)
	ListByCustomer(ctx context.Context, resource, customerID string, limit int) ([]*postgres.MirrorRecord, error)
}

// MirrorController exposes the local mirror for debugging and reporting.
// These endpoints never touch the provider; a missing record only means
// the mirror has not caught up, not that the resource does not exist.
type MirrorController struct {
	mirror MirrorReader
}

func NewMirrorController(mirror MirrorReader) *MirrorController {
	return &MirrorController{mirror: mirror}
}

func (h *MirrorController) Get(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")

	rec, err := h.mirror.Get(r.Context(), resource, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if rec == nil {
		writeError(w, domainErrors.NotFound("mirror.get", "no mirror record for "+resource+"/"+id))
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *MirrorController) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		writeError(w, domainErrors.NewValidationError("customer_id", "is required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, domainErrors.NewValidationError("limit", "must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := h.mirror.ListByCustomer(r.Context(), resource, customerID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*postgres.MirrorRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}
