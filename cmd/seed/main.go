// Seeds the backing store with a starter inventory table and an empty audit
// log. Intended for local development against the MySQL backend or a scratch
// spreadsheet.
//
// Usage:
//
//	STORE_BACKEND=mysql MYSQL_DSN=... go run ./cmd/seed
//	STORE_BACKEND=sheets SPREADSHEET_ID=... go run ./cmd/seed
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/HansLim7/inventoryapp/internal/adapter/storage"
	"github.com/HansLim7/inventoryapp/internal/core/domain"
	"github.com/HansLim7/inventoryapp/internal/port"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend := env("STORE_BACKEND", "mysql")
	inventoryTable := env("INVENTORY_TABLE", "Sheet1")
	logTable := env("LOG_TABLE", "Sheet2")

	var store port.TableStore
	switch backend {
	case "mysql":
		dsn := env("MYSQL_DSN", "root:root@tcp(localhost:3306)/inventory?parseTime=true")
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			log.Fatalf("mysql open: %v", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("mysql ping: %v", err)
		}
		mysqlStore := storage.NewMySQLStore(db, inventoryTable, logTable)
		if err := mysqlStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("ensure schema: %v", err)
		}
		store = mysqlStore
	case "sheets":
		spreadsheetID := os.Getenv("SPREADSHEET_ID")
		if spreadsheetID == "" {
			log.Fatal("SPREADSHEET_ID is required for the sheets backend")
		}
		var opts []option.ClientOption
		if f := os.Getenv("SHEETS_CREDENTIALS_FILE"); f != "" {
			opts = append(opts, option.WithCredentialsFile(f))
		}
		svc, err := sheets.NewService(ctx, opts...)
		if err != nil {
			log.Fatalf("sheets client: %v", err)
		}
		store = storage.NewSheetsStore(svc, spreadsheetID, inventoryTable)
	default:
		log.Fatalf("unknown STORE_BACKEND %q", backend)
	}

	inventory := domain.NewTable([]string{domain.ColProduct, domain.ColSize, domain.ColQuantity})
	inventory.Rows = [][]string{
		{"Shirt", "S", "10"},
		{"Shirt", "M", "10"},
		{"Shirt", "L", "10"},
		{"Hoodie", "M", "5"},
		{"Hoodie", "L", "5"},
		{"Cap", "One Size", "20"},
	}

	if err := store.Write(ctx, inventoryTable, inventory); err != nil {
		log.Fatalf("seed inventory: %v", err)
	}
	if err := store.Write(ctx, logTable, domain.NewTable(domain.LogHeaders)); err != nil {
		log.Fatalf("seed audit log: %v", err)
	}

	log.Printf("seeded %d inventory rows into %s and reset %s", len(inventory.Rows), inventoryTable, logTable)
}

func env(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
