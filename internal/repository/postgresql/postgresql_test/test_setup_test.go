package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/database"
)

// TestDatabaseSetup holds a connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.migrate(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to prepare schema: %v", err)
	}
	t.Cleanup(setup.Close)
	return setup
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS empresas (
		id uuid PRIMARY KEY,
		nombre text,
		logo_url text
	)`,
	`CREATE TABLE IF NOT EXISTS usuarios (
		id uuid PRIMARY KEY,
		nombre text,
		email text,
		id_empresa uuid REFERENCES empresas(id)
	)`,
	`CREATE TABLE IF NOT EXISTS fichajes (
		id uuid PRIMARY KEY,
		usuario_id uuid REFERENCES usuarios(id),
		tipo text,
		created_at timestamptz,
		latitud double precision,
		longitud double precision,
		ubicacion_autorizada boolean
	)`,
	`CREATE TABLE IF NOT EXISTS minutos_trabajados_diarios (
		usuario_id uuid,
		dia date,
		minutos integer
	)`,
}

func (t *TestDatabaseSetup) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := t.DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return t.TruncateAllTables(ctx)
}

// TruncateAllTables removes every row of the dashboard tables.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"minutos_trabajados_diarios",
		"fichajes",
		"usuarios",
		"empresas",
	}

	for _, table := range tables {
		if _, err := t.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
