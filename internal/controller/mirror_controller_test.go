package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cassiomorais/stripe-integration/internal/repository/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMirrorReader struct {
	GetFunc            func(ctx context.Context, resource, id string) (*postgres.MirrorRecord, error)
	ListByCustomerFunc func(ctx context.Context, resource, customerID string, limit int) ([]*postgres.MirrorRecord, error)
}

func (m *mockMirrorReader) Get(ctx context.Context, resource, id string) (*postgres.MirrorRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resource, id)
	}
	return nil, nil
}

func (m *mockMirrorReader) ListByCustomer(ctx context.Context, resource, customerID string, limit int) ([]*postgres.MirrorRecord, error) {
	if m.ListByCustomerFunc != nil {
		return m.ListByCustomerFunc(ctx, resource, customerID, limit)
	}
	return nil, nil
}

func setupMirrorRouter(mirror MirrorReader) *chi.Mux {
	r := chi.NewRouter()
	h := NewMirrorController(mirror)
	r.Get("/internal/mirror/{resource}", h.ListByCustomer)
	r.Get("/internal/mirror/{resource}/{id}", h.Get)
	return r
}

func TestMirrorGet_ReturnsRecord(t *testing.T) {
	mirror := &mockMirrorReader{
		GetFunc: func(ctx context.Context, resource, id string) (*postgres.MirrorRecord, error) {
			assert.Equal(t, "customer", resource)
			assert.Equal(t, "cus_123", id)
			return &postgres.MirrorRecord{
				Resource:   "customer",
				ID:         "cus_123",
				CustomerID: "cus_123",
				Payload:    json.RawMessage(`{"id":"cus_123"}`),
				UpdatedAt:  time.Unix(1700000000, 0),
			}, nil
		},
	}
	router := setupMirrorRouter(mirror)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/mirror/customer/cus_123", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got postgres.MirrorRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "cus_123", got.ID)
	assert.JSONEq(t, `{"id":"cus_123"}`, string(got.Payload))
}

func TestMirrorGet_MissingRecordIs404(t *testing.T) {
	router := setupMirrorRouter(&mockMirrorReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/mirror/customer/cus_missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Code)
}

func TestMirrorList_RequiresCustomerID(t *testing.T) {
	router := setupMirrorRouter(&mockMirrorReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/mirror/subscription", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Code)
}

func TestMirrorList_ForwardsFilters(t *testing.T) {
	mirror := &mockMirrorReader{
		ListByCustomerFunc: func(ctx context.Context, resource, customerID string, limit int) ([]*postgres.MirrorRecord, error) {
			assert.Equal(t, "subscription", resource)
			assert.Equal(t, "cus_123", customerID)
			assert.Equal(t, 5, limit)
			return []*postgres.MirrorRecord{
				{Resource: "subscription", ID: "sub_1", CustomerID: "cus_123"},
				{Resource: "subscription", ID: "sub_2", CustomerID: "cus_123"},
			}, nil
		},
	}
	router := setupMirrorRouter(mirror)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/mirror/subscription?customer_id=cus_123&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []*postgres.MirrorRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "sub_1", got[0].ID)
}

func TestMirrorList_EmptyResultIsEmptyArray(t *testing.T) {
	router := setupMirrorRouter(&mockMirrorReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/mirror/price?customer_id=cus_123", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
