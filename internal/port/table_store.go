package port

import (
	"context"
	"errors"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
)

// ErrStoreUnavailable is wrapped by adapters whenever the backing store is
// unreachable or rejects a request.
var ErrStoreUnavailable = errors.New("backing store unavailable")

type TableStore interface {
	// Read fetches the named table. On failure it returns an empty table
	// together with the error so callers can still render something.
	Read(ctx context.Context, table string) (domain.Table, error)

	// Write replaces the named table's entire contents with the given rows,
	// in the given order. No retry is attempted.
	Write(ctx context.Context, table string, t domain.Table) error
}
