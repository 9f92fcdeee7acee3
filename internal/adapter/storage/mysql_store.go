package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
	"github.com/HansLim7/inventoryapp/internal/port"
)

// MySQLStore is the local-development TableStore backend. It keeps the two
// known sheets in fixed SQL tables while preserving sheet semantics: cells are
// stored as text, writes replace the whole table, and read order is the write
// order. EnsureSchema creates the two tables.
type MySQLStore struct {
	db             *sql.DB
	inventoryTable string
	logTable       string
}

// NewMySQLStore maps the configured sheet names onto the inventory and
// audit_log SQL tables.
func NewMySQLStore(db *sql.DB, inventoryTable, logTable string) *MySQLStore {
	return &MySQLStore{db: db, inventoryTable: inventoryTable, logTable: logTable}
}

// EnsureSchema creates the backing SQL tables if they do not exist.
func (m *MySQLStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS inventory (
			pos INT NOT NULL,
			product VARCHAR(255),
			size VARCHAR(64),
			quantity VARCHAR(32),
			PRIMARY KEY (pos)
		)`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			pos INT NOT NULL,
			logged_at VARCHAR(32),
			product VARCHAR(255),
			size VARCHAR(64),
			quantity VARCHAR(32),
			action VARCHAR(16),
			PRIMARY KEY (pos)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: ensure schema: %v", port.ErrStoreUnavailable, err)
		}
	}
	return nil
}

func (m *MySQLStore) Read(ctx context.Context, table string) (domain.Table, error) {
	switch table {
	case m.inventoryTable:
		return m.readInventory(ctx)
	case m.logTable:
		return m.readLog(ctx)
	}
	return domain.Table{}, fmt.Errorf("mysql store: unknown table %q", table)
}

func (m *MySQLStore) Write(ctx context.Context, table string, t domain.Table) error {
	switch table {
	case m.inventoryTable:
		return m.replace(ctx, "inventory",
			`INSERT INTO inventory (pos, product, size, quantity) VALUES (?, ?, ?, ?)`,
			t, []string{domain.ColProduct, domain.ColSize, domain.ColQuantity})
	case m.logTable:
		return m.replace(ctx, "audit_log",
			`INSERT INTO audit_log (pos, logged_at, product, size, quantity, action) VALUES (?, ?, ?, ?, ?, ?)`,
			t, domain.LogHeaders)
	}
	return fmt.Errorf("mysql store: unknown table %q", table)
}

func (m *MySQLStore) readInventory(ctx context.Context) (domain.Table, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT product, size, quantity FROM inventory ORDER BY pos`)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: read inventory: %v", port.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	t := domain.NewTable([]string{domain.ColProduct, domain.ColSize, domain.ColQuantity})
	for rows.Next() {
		var product, size, quantity sql.NullString
		if err := rows.Scan(&product, &size, &quantity); err != nil {
			return domain.Table{}, fmt.Errorf("%w: scan inventory: %v", port.ErrStoreUnavailable, err)
		}
		t.Rows = append(t.Rows, []string{
			product.String,
			size.String,
			strconv.Itoa(domain.ParseQuantity(quantity.String)),
		})
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("%w: read inventory: %v", port.ErrStoreUnavailable, err)
	}
	return t, nil
}

func (m *MySQLStore) readLog(ctx context.Context) (domain.Table, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT logged_at, product, size, quantity, action FROM audit_log ORDER BY pos`)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: read audit log: %v", port.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	t := domain.NewTable(domain.LogHeaders)
	for rows.Next() {
		cells := make([]sql.NullString, 5)
		if err := rows.Scan(&cells[0], &cells[1], &cells[2], &cells[3], &cells[4]); err != nil {
			return domain.Table{}, fmt.Errorf("%w: scan audit log: %v", port.ErrStoreUnavailable, err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("%w: read audit log: %v", port.ErrStoreUnavailable, err)
	}
	return t, nil
}

// replace swaps the whole SQL table for the given rows inside one
// transaction, mirroring a full-sheet overwrite.
func (m *MySQLStore) replace(ctx context.Context, sqlTable, insert string, t domain.Table, headers []string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", port.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+sqlTable); err != nil {
		return fmt.Errorf("%w: clear %s: %v", port.ErrStoreUnavailable, sqlTable, err)
	}

	cols := make([]int, len(headers))
	for i, h := range headers {
		cols[i] = t.ColumnIndex(h)
	}
	for pos := range t.Rows {
		args := make([]interface{}, 0, len(headers)+1)
		args = append(args, pos)
		for _, c := range cols {
			args = append(args, t.Cell(pos, c))
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("%w: insert into %s: %v", port.ErrStoreUnavailable, sqlTable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %v", port.ErrStoreUnavailable, sqlTable, err)
	}
	return nil
}
