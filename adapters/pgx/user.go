package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sardor-dev/myid-auth/core"
)

func (a *Adapter) UpsertUserByPINFL(ctx context.Context, pinfl string) (*core.User, error) {
	// The no-op DO UPDATE makes the conflicting insert return the
	// existing row, so concurrent calls for the same unseen pinfl
	// converge on a single user.
	query := `INSERT INTO users (pinfl) VALUES ($1)
	          ON CONFLICT (pinfl) DO UPDATE SET pinfl = EXCLUDED.pinfl
	          RETURNING id, pinfl, created_at`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, query, pinfl).Scan(&user.ID, &user.PINFL, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	q := `SELECT id, pinfl, created_at FROM users WHERE id = $1`

	user := &core.User{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&user.ID, &user.PINFL, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
