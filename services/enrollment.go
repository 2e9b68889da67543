package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sardor-dev/myid-auth/core"
)

// Begin starts an enrollment. It issues a single-use state value and
// returns the provider authorization URL to redirect the caller to.
func (s *AuthService) Begin() (string, error) {
	state := uuid.NewString()
	s.states.Issue(state)

	return s.provider.AuthorizationURL(state), nil
}

// Complete finishes an enrollment from the provider callback.
//
// Step order matters: nothing is persisted until the code has been
// exchanged and the resulting profile has been fetched and projected,
// so a failed exchange leaves no rows behind.
func (s *AuthService) Complete(ctx context.Context, code, state string) (*core.EnrollmentResult, error) {
	if !s.states.Consume(state) {
		s.logger.Warn("enrollment callback with unknown state")
		return nil, core.ErrStateMismatch
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Warn("code exchange failed", zap.Error(err))
		return nil, err
	}

	doc, err := s.provider.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		s.logger.Warn("profile fetch failed after exchange", zap.Error(err))
		return nil, err
	}

	profile, err := core.ProjectProfile(doc)
	if err != nil {
		s.logger.Warn("provider returned malformed profile", zap.Error(err))
		return nil, err
	}

	user, err := s.db.UpsertUserByPINFL(ctx, profile.PINFL)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	cred := &core.Credential{
		UserID:       user.ID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Scope:        token.Scope,
	}

	if err := s.db.CreateCredential(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	s.logger.Info("enrollment persisted",
		zap.Int64("user_id", user.ID),
		zap.Int64("credential_id", cred.ID),
	)

	return &core.EnrollmentResult{
		User:       user,
		Credential: cred,
	}, nil
}
