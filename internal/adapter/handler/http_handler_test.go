package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
	"github.com/HansLim7/inventoryapp/internal/core/service"
	"github.com/HansLim7/inventoryapp/internal/pkg/clock"
	"github.com/HansLim7/inventoryapp/internal/port"
)

type memStore struct {
	tables  map[string]domain.Table
	readErr error
}

func (m *memStore) Read(ctx context.Context, table string) (domain.Table, error) {
	if m.readErr != nil {
		return domain.Table{}, m.readErr
	}
	return m.tables[table].Clone(), nil
}

func (m *memStore) Write(ctx context.Context, table string, t domain.Table) error {
	m.tables[table] = t.Clone()
	return nil
}

func (m *memStore) Invalidate(ctx context.Context, table string) error {
	return nil
}

func newTestHandler(store *memStore) *HTTPHandler {
	clk := clock.NewFake(time.Date(2024, 6, 1, 6, 30, 0, 0, time.UTC))
	svc := service.NewInventoryService(store, clk, time.UTC, "Sheet1", "Sheet2", zap.NewNop())
	return NewHTTPHandler(svc, service.NewSession(), zap.NewNop())
}

func seededMemStore() *memStore {
	inv := domain.NewTable([]string{domain.ColProduct, domain.ColSize, domain.ColQuantity})
	inv.Rows = [][]string{
		{"Shirt", "S", "4"},
		{"Shirt", "M", "10"},
		{"Hoodie", "M", "5"},
	}
	return &memStore{tables: map[string]domain.Table{
		"Sheet1": inv,
		"Sheet2": domain.NewTable(domain.LogHeaders),
	}}
}

func postUpdate(t *testing.T, h *HTTPHandler, req UpdateRequest) (*httptest.ResponseRecorder, UpdateResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/inventory/update", bytes.NewReader(body))
	h.Update(w, r)

	var resp UpdateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}

func TestUpdate_Add(t *testing.T) {
	store := seededMemStore()
	h := newTestHandler(store)

	w, resp := postUpdate(t, h, UpdateRequest{Product: "Shirt", Size: "M", Action: "Add", Quantity: 5})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 15, resp.NewQuantity)
	assert.Equal(t, "Added 5 to Shirt (Size: M). New quantity: 15", resp.Message)

	entries := store.tables["Sheet2"].Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Quantity)
}

func TestUpdate_RemoveExceedingQuantity(t *testing.T) {
	store := seededMemStore()
	h := newTestHandler(store)

	w, resp := postUpdate(t, h, UpdateRequest{Product: "Shirt", Size: "M", Action: "Remove", Quantity: 12})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, resp.Success)

	item, _, _ := store.tables["Sheet1"].FindItem("Shirt", "M")
	assert.Equal(t, 10, item.Quantity)
	assert.Empty(t, store.tables["Sheet2"].Rows)
}

func TestUpdate_ZeroQuantity(t *testing.T) {
	h := newTestHandler(seededMemStore())

	w, resp := postUpdate(t, h, UpdateRequest{Product: "Shirt", Size: "M", Action: "Add", Quantity: 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "please enter a quantity greater than 0", resp.Message)
}

func TestUpdate_UnknownItem(t *testing.T) {
	h := newTestHandler(seededMemStore())

	w, resp := postUpdate(t, h, UpdateRequest{Product: "Shirt", Size: "XL", Action: "Add", Quantity: 1})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
}

func TestUpdate_InvalidAction(t *testing.T) {
	h := newTestHandler(seededMemStore())

	w, _ := postUpdate(t, h, UpdateRequest{Product: "Shirt", Size: "M", Action: "Drop", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_StoreUnavailable(t *testing.T) {
	store := seededMemStore()
	store.readErr = port.ErrStoreUnavailable
	h := newTestHandler(store)

	w, _ := postUpdate(t, h, UpdateRequest{Product: "Shirt", Size: "M", Action: "Add", Quantity: 1})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestInventory_FilterPersistsInSession(t *testing.T) {
	h := newTestHandler(seededMemStore())

	w := httptest.NewRecorder()
	h.Inventory(w, httptest.NewRequest(http.MethodGet, "/api/inventory?product=Shirt&size=M", nil))

	var resp TableResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "10", resp.Rows[0][2])

	// The filters stick for the next request without params.
	w = httptest.NewRecorder()
	h.Inventory(w, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Rows, 1)
}

func TestInventory_ReadFailureRendersEmpty(t *testing.T) {
	store := seededMemStore()
	store.readErr = port.ErrStoreUnavailable
	h := newTestHandler(store)

	w := httptest.NewRecorder()
	h.Inventory(w, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))

	var resp TableResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Rows)
	assert.NotEmpty(t, resp.Error)
}

func TestOptions(t *testing.T) {
	h := newTestHandler(seededMemStore())

	w := httptest.NewRecorder()
	h.Options(w, httptest.NewRequest(http.MethodGet, "/api/inventory/options?product=Shirt", nil))

	var resp OptionsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"Shirt", "Hoodie"}, resp.Products)
	assert.Equal(t, []string{"S", "M"}, resp.Sizes)
}

func TestToggleView(t *testing.T) {
	h := newTestHandler(seededMemStore())

	w := httptest.NewRecorder()
	h.ToggleView(w, httptest.NewRequest(http.MethodPost, "/api/view", nil))

	var resp ViewResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.ViewLog)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(seededMemStore())

	w := httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodGet, "/api/inventory/update", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
