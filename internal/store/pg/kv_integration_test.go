//go:build integration
// +build integration

package pg_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"warranty/internal/domain"
	"warranty/internal/session"
	"warranty/internal/store/pg"
)

type fakeAuth struct{ resp domain.AuthResponse }

func (f fakeAuth) TelegramAuth(context.Context, string) (domain.AuthResponse, error) {
	return f.resp, nil
}

func TestKVStoreGetSetDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	kv := pg.NewKVStore(db, "cli")
	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "a", "2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := kv.Set(ctx, "b", "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, err := kv.Get(ctx, "a"); err != nil || !ok || v != "2" {
		t.Fatalf("expected a=2, got %q ok=%v err=%v", v, ok, err)
	}

	// other namespaces are isolated
	other := pg.NewKVStore(db, "gateway")
	if _, ok, _ := other.Get(ctx, "a"); ok {
		t.Fatalf("namespace leak")
	}

	if err := kv.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, k := range []string{"a", "b"} {
		if _, ok, _ := kv.Get(ctx, k); ok {
			t.Fatalf("%s should be gone", k)
		}
	}
}

func TestSessionOverKVStore(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	kv := pg.NewKVStore(db, "")
	if err := kv.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	s := session.New(kv)
	resp := domain.AuthResponse{
		Status: domain.AuthCreated,
		User:   &domain.User{ID: 7, FirstName: "Ali", Role: domain.RoleSeller, Status: domain.AuthCreated},
		Token:  "tok-7",
	}
	if _, err := s.CheckAuth(ctx, fakeAuth{resp: resp}, "901234567"); err != nil {
		t.Fatalf("check auth: %v", err)
	}

	again := session.New(kv)
	if err := again.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if u, ok := again.User(); !ok || u.ID != 7 || again.Token(ctx) != "tok-7" {
		t.Fatalf("unexpected hydrated session %+v", u)
	}

	if err := again.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	var n int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM session_kv`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty table after logout, got %d rows", n)
	}
}

func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("SESSION_DSN")
	}
	if dsn == "" {
		t.Skip("TEST_DB_DSN or SESSION_DSN not set")
	}

	schema := fmt.Sprintf("test_%d", time.Now().UnixNano())
	admin, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect admin db: %v", err)
	}

	_, err = admin.Exec(context.Background(), "CREATE SCHEMA "+schema)
	if err != nil {
		admin.Close()
		t.Fatalf("create schema: %v", err)
	}

	dbDSN, err := withSearchPath(dsn, schema)
	if err != nil {
		admin.Close()
		t.Fatalf("build dsn: %v", err)
	}

	db, err := pg.NewPool(context.Background(), dbDSN, pg.PoolOptions{MaxConns: 4})
	if err != nil {
		admin.Close()
		t.Fatalf("connect test db: %v", err)
	}

	sqlPath := filepath.Join("..", "..", "..", "migrations", "001_init.sql")
	sqlBytes, err := os.ReadFile(sqlPath)
	if err != nil {
		db.Close()
		admin.Close()
		t.Fatalf("read migrations: %v", err)
	}

	if _, err := db.Exec(context.Background(), string(sqlBytes)); err != nil {
		db.Close()
		admin.Close()
		t.Fatalf("run migrations: %v", err)
	}

	cleanup := func() {
		db.Close()
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	}

	return db, cleanup
}

func withSearchPath(dsn, schema string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}
	q := u.Query()
	opts := q.Get("options")
	if opts != "" {
		opts = opts + " -c search_path=" + schema
	} else {
		opts = "-c search_path=" + schema
	}
	q.Set("options", opts)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
