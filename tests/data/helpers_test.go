package data

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	surreal "github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/folio/internal/common"
	tcommon "github.com/bobmcallan/folio/tests/common"
)

// testConfig returns a config pointing at the shared SurrealDB container with a
// unique database per test for isolation.
func testConfig(t *testing.T) *common.Config {
	t.Helper()

	sc := tcommon.StartSurrealDB(t)

	cfg := common.NewDefaultConfig()
	cfg.Environment = "test"
	cfg.Logging.Level = "disabled"
	cfg.Storage.Backend = "surrealdb"
	cfg.Storage.Address = sc.Address()
	cfg.Storage.Namespace = "folio_data_test"
	cfg.Storage.Database = fmt.Sprintf("d_%s_%d", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()), time.Now().UnixNano()%100000)
	cfg.Storage.Portfolio = "main"
	return cfg
}

// seeder writes fixture rows into the database a test config points at.
type seeder struct {
	t  *testing.T
	db *surreal.DB
}

func newSeeder(t *testing.T, cfg *common.Config) *seeder {
	t.Helper()
	ctx := context.Background()

	db, err := surreal.New(cfg.Storage.Address)
	if err != nil {
		t.Fatalf("connect to SurrealDB: %v", err)
	}
	if _, err := db.SignIn(ctx, map[string]interface{}{"user": "root", "pass": "root"}); err != nil {
		t.Fatalf("sign in to SurrealDB: %v", err)
	}
	if err := db.Use(ctx, cfg.Storage.Namespace, cfg.Storage.Database); err != nil {
		t.Fatalf("select namespace/database: %v", err)
	}
	t.Cleanup(func() { db.Close(context.Background()) })

	return &seeder{t: t, db: db}
}

func (s *seeder) exec(sql string, vars map[string]any) {
	s.t.Helper()
	if _, err := surreal.Query[any](context.Background(), s.db, sql, vars); err != nil {
		s.t.Fatalf("exec %q: %v", sql, err)
	}
}

func (s *seeder) portfolio(id string) {
	s.exec("UPSERT $rid CONTENT $data", map[string]any{
		"rid":  surrealmodels.NewRecordID("portfolio", id),
		"data": map[string]any{"name": id},
	})
}

func (s *seeder) row(table string, data map[string]any) {
	s.exec(fmt.Sprintf("CREATE %s CONTENT $data", table), map[string]any{"data": data})
}

// testContext returns a background context.
func testContext() context.Context {
	return context.Background()
}
