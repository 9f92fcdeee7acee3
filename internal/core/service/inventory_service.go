package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
	"github.com/HansLim7/inventoryapp/internal/pkg/clock"
	"github.com/HansLim7/inventoryapp/internal/port"
)

var (
	ErrItemNotFound     = errors.New("product and size not found")
	ErrInvalidDelta     = errors.New("quantity must be greater than 0")
	ErrQuantityExceeded = errors.New("cannot remove more than the current quantity")
)

// AuditError reports a failed audit append after the inventory write already
// succeeded. The inventory change stands; there is no compensating rollback.
type AuditError struct {
	Err error
}

func (e *AuditError) Error() string {
	return "audit log append failed: " + e.Err.Error()
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

// Store is the cached table store the service reads and writes through.
// Invalidate drops the short-lived read snapshot after a write so the next
// cycle sees fresh data.
type Store interface {
	port.TableStore
	Invalidate(ctx context.Context, table string) error
}

// ChangeRequest asks for one quantity change against one (product, size) row.
// Delta is the magnitude; Action carries the direction.
type ChangeRequest struct {
	Product string
	Size    string
	Action  domain.Action
	Delta   int
}

// InventoryService applies quantity changes to the inventory sheet and records
// each change in the audit log sheet.
//
// A change cycle validates against the table it was handed, which may be a
// cached snapshot up to the cache TTL old. Two rapid cycles can both validate
// against the same stale quantity and the second full-table write clobbers the
// first. That race is inherited from the sheet-backed design and is not
// mitigated here.
type InventoryService struct {
	store          Store
	clock          clock.Clock
	loc            *time.Location
	inventoryTable string
	logTable       string
	log            *zap.Logger
}

func NewInventoryService(store Store, clk clock.Clock, loc *time.Location, inventoryTable, logTable string, log *zap.Logger) *InventoryService {
	return &InventoryService{
		store:          store,
		clock:          clk,
		loc:            loc,
		inventoryTable: inventoryTable,
		logTable:       logTable,
		log:            log,
	}
}

// Inventory reads the current inventory table. On store failure it returns an
// empty table together with the error so the dashboard can still render.
func (s *InventoryService) Inventory(ctx context.Context) (domain.Table, error) {
	return s.store.Read(ctx, s.inventoryTable)
}

// AuditLog reads the audit log table.
func (s *InventoryService) AuditLog(ctx context.Context) (domain.Table, error) {
	return s.store.Read(ctx, s.logTable)
}

// ApplyChange applies exactly one quantity change to exactly one row of the
// given table and records it. The table must be the most recently read
// inventory snapshot; bounds are validated against it, not against a fresh
// read. On success the new quantity is returned. If the audit append fails
// after the inventory write succeeded, the new quantity is returned together
// with an *AuditError.
func (s *InventoryService) ApplyChange(ctx context.Context, table domain.Table, req ChangeRequest) (int, error) {
	if req.Delta <= 0 {
		return 0, ErrInvalidDelta
	}

	item, row, ok := table.FindItem(req.Product, req.Size)
	if !ok {
		return 0, ErrItemNotFound
	}

	var next int
	switch req.Action {
	case domain.ActionAdd:
		next = item.Quantity + req.Delta
	case domain.ActionRemove:
		if req.Delta > item.Quantity {
			return 0, ErrQuantityExceeded
		}
		next = item.Quantity - req.Delta
	default:
		return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidDelta, req.Action)
	}

	updated := table.Clone()
	updated.SetQuantity(row, next)

	if err := s.store.Write(ctx, s.inventoryTable, updated); err != nil {
		return 0, err
	}
	if err := s.store.Invalidate(ctx, s.inventoryTable); err != nil {
		s.log.Warn("inventory snapshot invalidate failed", zap.Error(err))
	}

	s.log.Info("inventory updated",
		zap.String("product", req.Product),
		zap.String("size", req.Size),
		zap.String("action", string(req.Action)),
		zap.Int("delta", req.Delta),
		zap.Int("quantity", next),
	)

	entry := domain.Entry{
		Date:     s.clock.Now().In(s.loc).Format(domain.DateLayout),
		Product:  req.Product,
		Size:     req.Size,
		Quantity: req.Delta,
		Action:   req.Action,
	}
	if err := s.appendAudit(ctx, entry); err != nil {
		s.log.Error("audit log append failed", zap.Error(err))
		return next, &AuditError{Err: err}
	}

	return next, nil
}

// appendAudit extends the log sheet by one entry. The append is deliberately
// read-modify-write over the whole sheet; it is isolated here so an atomic
// append could replace it without touching callers.
func (s *InventoryService) appendAudit(ctx context.Context, e domain.Entry) error {
	logTable, err := s.store.Read(ctx, s.logTable)
	if err != nil {
		return err
	}
	if len(logTable.Headers) == 0 {
		logTable = domain.NewTable(domain.LogHeaders)
	}

	next := logTable.Clone()
	next.Rows = append(next.Rows, e.Row())

	if err := s.store.Write(ctx, s.logTable, next); err != nil {
		return err
	}
	if err := s.store.Invalidate(ctx, s.logTable); err != nil {
		s.log.Warn("audit snapshot invalidate failed", zap.Error(err))
	}
	return nil
}
