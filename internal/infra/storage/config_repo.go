package storage

import (
	"context"
	"database/sql"
	"log"

	pq "github.com/lib/pq"
)

type ConfigRepo struct{ db *sql.DB }

func NewConfigRepo(db *sql.DB) *ConfigRepo { return &ConfigRepo{db: db} }

// Get: fila ausente o error de storage → default (el error se loguea, no se
// propaga). El store no valida el formato del value; eso es del caller.
func (r *ConfigRepo) Get(ctx context.Context, key, def string) string {
	row := r.db.QueryRowContext(ctx, `
SELECT value
  FROM bot_config
 WHERE key = $1
`, key)

	var v string
	err := row.Scan(&v)
	if err == sql.ErrNoRows {
		return def
	}
	if err != nil {
		log.Printf("config get %s: %v", key, err)
		return def
	}
	return v
}

// Set: upsert por key.
func (r *ConfigRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO bot_config (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET
  value = EXCLUDED.value
`, key, value)
	return err
}

// PruneExcept borra claves fuera del set conocido (higiene del janitor).
func (r *ConfigRepo) PruneExcept(ctx context.Context, known []string) (int64, error) {
	if len(known) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `
DELETE FROM bot_config
 WHERE NOT (key = ANY($1))
`, pq.Array(known))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
