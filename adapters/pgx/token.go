package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sardor-dev/myid-auth/core"
)

func (a *Adapter) CreateAccessToken(ctx context.Context, token *core.AccessToken) error {
	query := `INSERT INTO user_access_tokens (user_id, access_token)
	          VALUES ($1, $2)
	          RETURNING id, created_at`

	err := a.pool.QueryRow(ctx, query, token.UserID, token.Token).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrTokenExists
		}
		return err
	}

	return nil
}

func (a *Adapter) GetAccessTokenByUser(ctx context.Context, userID int64) (*core.AccessToken, error) {
	query := `SELECT id, user_id, access_token, created_at
	          FROM user_access_tokens WHERE user_id = $1`

	token := &core.AccessToken{}
	err := a.pool.QueryRow(ctx, query, userID).Scan(&token.ID, &token.UserID, &token.Token, &token.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrTokenNotFound
		}
		return nil, err
	}

	return token, nil
}

func (a *Adapter) GetAccessTokenByValue(ctx context.Context, value string) (*core.AccessToken, error) {
	query := `SELECT id, user_id, access_token, created_at
	          FROM user_access_tokens WHERE access_token = $1`

	token := &core.AccessToken{}
	err := a.pool.QueryRow(ctx, query, value).Scan(&token.ID, &token.UserID, &token.Token, &token.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, core.ErrTokenNotFound
		}
		return nil, err
	}

	return token, nil
}
