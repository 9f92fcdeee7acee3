package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
	"github.com/HansLim7/inventoryapp/internal/core/service"
	"github.com/HansLim7/inventoryapp/internal/port"
)

// HTTPHandler exposes the dashboard operations as a JSON API: the filtered
// inventory view, the filter options, the update action, the audit log view,
// and the view toggle.
type HTTPHandler struct {
	svc     *service.InventoryService
	session *service.Session
	log     *zap.Logger
}

type TableResponse struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Error   string     `json:"error,omitempty"`
}

type OptionsResponse struct {
	Products []string `json:"products"`
	Sizes    []string `json:"sizes"`
	Error    string   `json:"error,omitempty"`
}

type UpdateRequest struct {
	Product  string `json:"product"`
	Size     string `json:"size"`
	Action   string `json:"action"`
	Quantity int    `json:"quantity"`
}

type UpdateResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	NewQuantity int    `json:"new_quantity,omitempty"`
	Warning     string `json:"warning,omitempty"`
}

type ViewResponse struct {
	ViewLog bool `json:"view_log"`
}

func NewHTTPHandler(svc *service.InventoryService, session *service.Session, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, session: session, log: log}
}

// Inventory renders the inventory table filtered by the session's product and
// size filters. Query params override and update the session. A store failure
// is non-fatal: the response carries empty rows plus the error message.
func (h *HTTPHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	if q.Has("product") || q.Has("size") {
		h.session.SetFilters(q.Get("product"), q.Get("size"))
	}
	product, size := h.session.Filters()

	table, err := h.svc.Inventory(r.Context())
	if err != nil {
		h.log.Warn("inventory read failed", zap.Error(err))
		writeJSON(w, http.StatusOK, TableResponse{
			Headers: []string{},
			Rows:    [][]string{},
			Error:   "error fetching data: " + err.Error(),
		})
		return
	}

	filtered := table.Filter(product, size)
	writeJSON(w, http.StatusOK, TableResponse{Headers: filtered.Headers, Rows: filtered.Rows})
}

// Options returns the distinct products and, for the given product, the
// distinct sizes, to drive the dashboard's select boxes.
func (h *HTTPHandler) Options(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	table, err := h.svc.Inventory(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, OptionsResponse{
			Products: []string{},
			Sizes:    []string{},
			Error:    "error fetching data: " + err.Error(),
		})
		return
	}

	product := r.URL.Query().Get("product")
	if product == "All" {
		product = ""
	}
	writeJSON(w, http.StatusOK, OptionsResponse{
		Products: table.Products(),
		Sizes:    table.Sizes(product),
	})
}

// Update applies one Add/Remove quantity change and reports the outcome. The
// bounds check runs against the snapshot read at the start of this request.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, UpdateResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	action, ok := domain.ParseAction(req.Action)
	if !ok || req.Product == "" || req.Size == "" {
		writeJSON(w, http.StatusBadRequest, UpdateResponse{
			Success: false,
			Message: "product, size and a valid action are required",
		})
		return
	}

	table, err := h.svc.Inventory(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, UpdateResponse{
			Success: false,
			Message: "inventory unavailable: " + err.Error(),
		})
		return
	}

	newQuantity, err := h.svc.ApplyChange(r.Context(), table, service.ChangeRequest{
		Product: req.Product,
		Size:    req.Size,
		Action:  action,
		Delta:   req.Quantity,
	})

	var auditErr *service.AuditError
	switch {
	case err == nil:
	case errors.As(err, &auditErr):
		// The inventory write succeeded; report the change with a warning.
		writeJSON(w, http.StatusOK, UpdateResponse{
			Success:     true,
			Message:     successMessage(action, req, newQuantity),
			NewQuantity: newQuantity,
			Warning:     auditErr.Error(),
		})
		return
	case errors.Is(err, service.ErrInvalidDelta):
		writeJSON(w, http.StatusBadRequest, UpdateResponse{
			Success: false,
			Message: "please enter a quantity greater than 0",
		})
		return
	case errors.Is(err, service.ErrQuantityExceeded):
		writeJSON(w, http.StatusUnprocessableEntity, UpdateResponse{
			Success: false,
			Message: "cannot remove more than the current quantity",
		})
		return
	case errors.Is(err, service.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, UpdateResponse{
			Success: false,
			Message: "selected product and size no longer exist",
		})
		return
	case errors.Is(err, port.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, UpdateResponse{
			Success: false,
			Message: "inventory store unavailable: " + err.Error(),
		})
		return
	default:
		h.log.Error("update failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, UpdateResponse{
			Success: false,
			Message: "internal error",
		})
		return
	}

	writeJSON(w, http.StatusOK, UpdateResponse{
		Success:     true,
		Message:     successMessage(action, req, newQuantity),
		NewQuantity: newQuantity,
	})
}

// AuditLog renders the audit log table.
func (h *HTTPHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	table, err := h.svc.AuditLog(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, TableResponse{
			Headers: []string{},
			Rows:    [][]string{},
			Error:   "error fetching data: " + err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, TableResponse{Headers: table.Headers, Rows: table.Rows})
}

// ToggleView flips the session between the inventory and log views.
func (h *HTTPHandler) ToggleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, ViewResponse{ViewLog: h.session.ToggleView()})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func successMessage(action domain.Action, req UpdateRequest, newQuantity int) string {
	format := "Added %d to %s (Size: %s). New quantity: %d"
	if action == domain.ActionRemove {
		format = "Removed %d from %s (Size: %s). New quantity: %d"
	}
	return fmt.Sprintf(format, req.Quantity, req.Product, req.Size, newQuantity)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
