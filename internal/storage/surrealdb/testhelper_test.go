package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	tcommon "github.com/bobmcallan/folio/tests/common"
	surreal "github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// testDB starts the shared SurrealDB container and returns a connected *surreal.DB
// using a unique database name per test to ensure isolation.
func testDB(t *testing.T) *surreal.DB {
	t.Helper()

	sc := tcommon.StartSurrealDB(t)
	ctx := context.Background()

	db, err := surreal.New(sc.Address())
	if err != nil {
		t.Fatalf("connect to SurrealDB: %v", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": "root",
		"pass": "root",
	}); err != nil {
		t.Fatalf("sign in to SurrealDB: %v", err)
	}

	// SurrealDB rejects "/" in database names, which subtests produce.
	sanitized := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbName := fmt.Sprintf("t_%s_%d", sanitized, time.Now().UnixNano()%100000)
	if err := db.Use(ctx, "folio_test", dbName); err != nil {
		t.Fatalf("select namespace/database: %v", err)
	}
	if err := defineTables(ctx, db); err != nil {
		t.Fatalf("define tables: %v", err)
	}

	t.Cleanup(func() {
		db.Close(context.Background())
	})

	return db
}

// testLogger returns a silent logger for tests.
func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

// exec runs a statement and fails the test on error.
func exec(t *testing.T, db *surreal.DB, sql string, vars map[string]any) {
	t.Helper()
	if _, err := surreal.Query[any](context.Background(), db, sql, vars); err != nil {
		t.Fatalf("exec %q: %v", sql, err)
	}
}

// seedPortfolio creates a portfolio record with its holdings and transactions.
func seedPortfolio(t *testing.T, db *surreal.DB, id string, holdings []models.Holding, txs []models.Transaction) {
	t.Helper()

	exec(t, db, "UPSERT $rid CONTENT $data", map[string]any{
		"rid":  surrealmodels.NewRecordID(tablePortfolio, id),
		"data": map[string]any{"name": id},
	})

	for _, h := range holdings {
		row := map[string]any{
			"portfolio": id,
			"code":      h.Code,
			"name":      h.Name,
			"type":      string(h.Type),
			"category":  h.Category,
			"quantity":  h.Quantity,
		}
		if h.LastValuation != nil {
			row["last_valuation"] = *h.LastValuation
		}
		if h.CurrentPrice != nil {
			row["current_price"] = *h.CurrentPrice
		}
		if h.AverageCost != nil {
			row["average_cost"] = *h.AverageCost
		}
		exec(t, db, "CREATE holding CONTENT $data", map[string]any{"data": row})
	}

	for _, tx := range txs {
		exec(t, db, "CREATE transaction CONTENT $data", map[string]any{"data": map[string]any{
			"portfolio": id,
			"code":      tx.Code,
			"date":      tx.Date,
			"type":      string(tx.Type),
			"units":     tx.Units,
			"amount":    tx.Amount,
		}})
	}
}
