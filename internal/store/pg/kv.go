package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_kv (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// KVStore is a session.Store in Postgres. Namespace separates profiles that
// share one database.
type KVStore struct {
	DB        *pgxpool.Pool
	Namespace string
}

func NewKVStore(db *pgxpool.Pool, namespace string) *KVStore {
	if namespace == "" {
		namespace = "default"
	}
	return &KVStore{DB: db, Namespace: namespace}
}

func (s *KVStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, schema)
	return err
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.DB.QueryRow(ctx, `
		SELECT value FROM session_kv WHERE namespace=$1 AND key=$2
	`, s.Namespace, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO session_kv (namespace, key, value, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (namespace, key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()
	`, s.Namespace, key, value)
	return err
}

// Delete removes all keys in one statement so user and token go together.
func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.DB.Exec(ctx, `
		DELETE FROM session_kv WHERE namespace=$1 AND key = ANY($2)
	`, s.Namespace, keys)
	return err
}
