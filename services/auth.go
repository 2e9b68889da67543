package services

import (
	"go.uber.org/zap"

	"github.com/sardor-dev/myid-auth/core"
)

// AuthService drives the enrollment flow against the identity provider
// and serves repeat lookups without repeating the OAuth dance.
type AuthService struct {
	db       core.AuthStorage
	provider core.IdentityProvider
	states   *core.StateStore
	logger   *zap.Logger
}

// Ensure AuthService implements AuthHandler
var _ core.AuthHandler = (*AuthService)(nil)

func NewAuthService(db core.AuthStorage, provider core.IdentityProvider, states *core.StateStore, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthService{
		db:       db,
		provider: provider,
		states:   states,
		logger:   logger,
	}
}
