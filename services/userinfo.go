package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sardor-dev/myid-auth/core"
	"github.com/sardor-dev/myid-auth/pkg/crypto"
)

// GetUserInfo returns the local identity, local token and current
// provider profile for a PINFL.
//
// An unseen PINFL yields a freshly created, credential-less user; the
// lookup then fails with ErrNoCredential rather than handing the
// provider an invalid token.
func (s *AuthService) GetUserInfo(ctx context.Context, pinfl string) (*core.UserInfo, error) {
	user, err := s.db.UpsertUserByPINFL(ctx, pinfl)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	cred, err := s.db.GetLatestCredential(ctx, user.ID)
	if err != nil {
		if errors.Is(err, core.ErrCredentialNotFound) {
			s.logger.Info("lookup for user without credential", zap.Int64("user_id", user.ID))
			return nil, core.ErrNoCredential
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	token, err := s.getOrCreateToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create token: %w", err)
	}

	doc, err := s.provider.FetchProfile(ctx, cred.AccessToken)
	if err != nil {
		s.logger.Warn("profile fetch failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	profile, err := core.ProjectProfile(doc)
	if err != nil {
		s.logger.Warn("provider returned malformed profile", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	return &core.UserInfo{
		UserID:  user.ID,
		Token:   token.Token,
		Profile: profile,
	}, nil
}

// getOrCreateToken returns the user's local access token, generating it
// on first need. A concurrent create that loses the unique constraint
// falls back to reading the winning row.
func (s *AuthService) getOrCreateToken(ctx context.Context, userID int64) (*core.AccessToken, error) {
	token, err := s.db.GetAccessTokenByUser(ctx, userID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, core.ErrTokenNotFound) {
		return nil, err
	}

	raw, err := crypto.GenerateToken(crypto.DefaultTokenLength)
	if err != nil {
		return nil, err
	}

	token = &core.AccessToken{
		UserID: userID,
		Token:  raw,
	}

	err = s.db.CreateAccessToken(ctx, token)
	if errors.Is(err, core.ErrTokenExists) {
		return s.db.GetAccessTokenByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return token, nil
}
