package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sardor-dev/myid-auth/core"
)

func (a *Adapter) CreateCredential(ctx context.Context, cred *core.Credential) error {
	query := `INSERT INTO user_myid_credentials (user_id, access_token, refresh_token, scope)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`

	err := a.pool.QueryRow(ctx, query,
		cred.UserID, cred.AccessToken, cred.RefreshToken, cred.Scope,
	).Scan(&cred.ID, &cred.CreatedAt)

	if err != nil {
		return err
	}

	return nil
}

func (a *Adapter) GetLatestCredential(ctx context.Context, userID int64) (*core.Credential, error) {
	query := `SELECT id, user_id, access_token, refresh_token, scope, created_at
	          FROM user_myid_credentials WHERE user_id = $1
	          ORDER BY id DESC LIMIT 1`

	cred := &core.Credential{}
	err := a.pool.QueryRow(ctx, query, userID).Scan(
		&cred.ID, &cred.UserID, &cred.AccessToken, &cred.RefreshToken, &cred.Scope, &cred.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrCredentialNotFound
		}
		return nil, err
	}

	return cred, nil
}
