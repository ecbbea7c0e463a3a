package storage

import (
	"context"
	"database/sql"

	pq "github.com/lib/pq"
)

type ActivityRepo struct{ db *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{db: db} }

// Get devuelve ceros (sin error) si el usuario no tiene fila todavía.
func (r *ActivityRepo) Get(ctx context.Context, userID string) (ActivityRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT messages, mod_actions
  FROM staff_activity
 WHERE user_id = $1
`, userID)

	rec := ActivityRecord{UserID: userID}
	err := row.Scan(&rec.Messages, &rec.ModActions)
	if err == sql.ErrNoRows {
		return ActivityRecord{UserID: userID}, nil
	}
	return rec, err
}

// IncrementMessages: upsert atómico (+1). Seguro bajo eventos concurrentes:
// el add lo hace la DB, nunca un read-modify-write del caller.
func (r *ActivityRepo) IncrementMessages(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO staff_activity (user_id, messages, mod_actions)
VALUES ($1, 1, 0)
ON CONFLICT (user_id) DO UPDATE SET
  messages = staff_activity.messages + 1
`, userID)
	return err
}

func (r *ActivityRepo) IncrementModActions(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO staff_activity (user_id, messages, mod_actions)
VALUES ($1, 0, 1)
ON CONFLICT (user_id) DO UPDATE SET
  mod_actions = staff_activity.mod_actions + 1
`, userID)
	return err
}

// GetAll: snapshot completo user_id -> contadores.
func (r *ActivityRepo) GetAll(ctx context.Context) (map[string]ActivityRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, messages, mod_actions
  FROM staff_activity
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]ActivityRecord{}
	for rows.Next() {
		var rec ActivityRecord
		if err := rows.Scan(&rec.UserID, &rec.Messages, &rec.ModActions); err != nil {
			return nil, err
		}
		out[rec.UserID] = rec
	}
	return out, rows.Err()
}

// GetMany: devuelve mapa user_id -> contadores para el set pedido.
func (r *ActivityRepo) GetMany(ctx context.Context, userIDs []string) (map[string]ActivityRecord, error) {
	out := map[string]ActivityRecord{}
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, messages, mod_actions
  FROM staff_activity
 WHERE user_id = ANY($1)
`, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec ActivityRecord
		if err := rows.Scan(&rec.UserID, &rec.Messages, &rec.ModActions); err != nil {
			return nil, err
		}
		out[rec.UserID] = rec
	}
	return out, rows.Err()
}

// NegativeCounters lista usuarios con contadores negativos (no debería pasar;
// lo revisa el janitor).
func (r *ActivityRepo) NegativeCounters(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id
  FROM staff_activity
 WHERE messages < 0 OR mod_actions < 0
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ResetAll borra todas las filas. Lo dispara solo el ciclo periódico (o un reset manual).
func (r *ActivityRepo) ResetAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM staff_activity`)
	return err
}
