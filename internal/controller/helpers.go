package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cassiomorais/stripe-integration/internal/domain/billing"
	domainErrors "github.com/cassiomorais/stripe-integration/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrOwnershipMismatch, http.StatusConflict, "ownership_mismatch"},
	{domainErrors.ErrPreconditionFailed, http.StatusUnprocessableEntity, "precondition_failed"},
	{domainErrors.ErrValidationFailed, http.StatusBadRequest, "validation_error"},
	{domainErrors.ErrProviderUnavailable, http.StatusBadGateway, "provider_error"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.Code = "validation_error"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			writeJSON(w, m.status, resp)
			return
		}
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}

// listPageFromQuery reads cursor pagination from the query string. The
// cursors are opaque and forwarded untouched; only limit is parsed.
func listPageFromQuery(r *http.Request) (billing.ListPage, error) {
	var page billing.ListPage
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return page, domainErrors.NewValidationError("limit", "must be a positive integer")
		}
		page.Limit = &limit
	}
	if sa := q.Get("starting_after"); sa != "" {
		page.StartingAfter = &sa
	}
	if eb := q.Get("ending_before"); eb != "" {
		page.EndingBefore = &eb
	}
	return page, nil
}

func boolQuery(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domainErrors.NewValidationError(name, "must be true or false")
	}
	return &v, nil
}
