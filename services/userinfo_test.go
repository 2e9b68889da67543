package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sardor-dev/myid-auth/core"
)

// enrolledStorage returns a storage with one enrolled user and that
// user's record.
func enrolledStorage(t *testing.T, pinfl string) (*FakeAuthStorage, *core.User) {
	t.Helper()

	storage := NewFakeAuthStorage()
	user, err := storage.UpsertUserByPINFL(context.Background(), pinfl)
	if err != nil {
		t.Fatalf("UpsertUserByPINFL() error = %v", err)
	}
	err = storage.CreateCredential(context.Background(), &core.Credential{
		UserID:       user.ID,
		AccessToken:  "tok1",
		RefreshToken: "ref1",
		Scope:        "address",
	})
	if err != nil {
		t.Fatalf("CreateCredential() error = %v", err)
	}
	return storage, user
}

// Requirement: GetUserInfo returns the local identity, local token and
// projected provider profile for an enrolled PINFL.
func TestAuthService_GetUserInfo(t *testing.T) {
	storage, user := enrolledStorage(t, "12345678901234")
	provider := &FakeProvider{profileDoc: sampleProfileDoc("12345678901234")}
	service := NewAuthService(storage, provider, core.NewStateStore(core.StateStoreConfig{}), nil)

	info, err := service.GetUserInfo(context.Background(), "12345678901234")
	if err != nil {
		t.Fatalf("GetUserInfo() error = %v", err)
	}

	if info.UserID != user.ID {
		t.Errorf("UserID = %d, want %d", info.UserID, user.ID)
	}
	if info.Token == "" {
		t.Error("GetUserInfo() should issue a local token")
	}
	if info.Profile.PINFL != "12345678901234" || info.Profile.DistrictID != 1102 {
		t.Errorf("Profile = %+v", info.Profile)
	}

	// The provider must be called with the stored credential, not the
	// local token.
	if got := provider.fetchedTokens; len(got) != 1 || got[0] != "tok1" {
		t.Errorf("fetched tokens = %v, want [tok1]", got)
	}
}

// Requirement: repeated lookups for the same PINFL return the same user
// id and the same local token (no silent rotation).
func TestAuthService_GetUserInfo_Idempotent(t *testing.T) {
	storage, _ := enrolledStorage(t, "12345678901234")
	provider := &FakeProvider{profileDoc: sampleProfileDoc("12345678901234")}
	service := NewAuthService(storage, provider, core.NewStateStore(core.StateStoreConfig{}), nil)

	first, err := service.GetUserInfo(context.Background(), "12345678901234")
	if err != nil {
		t.Fatalf("first GetUserInfo() error = %v", err)
	}
	second, err := service.GetUserInfo(context.Background(), "12345678901234")
	if err != nil {
		t.Fatalf("second GetUserInfo() error = %v", err)
	}

	if first.UserID != second.UserID {
		t.Errorf("user ids differ: %d vs %d", first.UserID, second.UserID)
	}
	if first.Token != second.Token {
		t.Errorf("local token rotated: %q vs %q", first.Token, second.Token)
	}
	if storage.UserCount() != 1 {
		t.Errorf("user count = %d, want 1", storage.UserCount())
	}
}

// Requirement: an unseen PINFL yields a freshly created user and a
// NoCredential failure; the provider is never called with an invalid
// token.
func TestAuthService_GetUserInfo_UnknownPINFL(t *testing.T) {
	storage := NewFakeAuthStorage()
	provider := &FakeProvider{}
	service := NewAuthService(storage, provider, core.NewStateStore(core.StateStoreConfig{}), nil)

	_, err := service.GetUserInfo(context.Background(), "99999999999999")
	if !errors.Is(err, core.ErrNoCredential) {
		t.Fatalf("GetUserInfo() error = %v, want ErrNoCredential", err)
	}

	if storage.UserCount() != 1 {
		t.Errorf("user count = %d, want 1 (user is created on first sight)", storage.UserCount())
	}
	if len(provider.fetchedTokens) != 0 {
		t.Errorf("provider called with %v, want no calls", provider.fetchedTokens)
	}
}

// Requirement: losing the token-creation race falls back to reading the
// winning row instead of failing.
func TestAuthService_GetUserInfo_TokenRace(t *testing.T) {
	storage, user := enrolledStorage(t, "12345678901234")
	winner := &core.AccessToken{ID: 7, UserID: user.ID, Token: "winning-token"}
	storage.tokenCreateErr = core.ErrTokenExists
	storage.raceWinner = winner

	provider := &FakeProvider{profileDoc: sampleProfileDoc("12345678901234")}
	service := NewAuthService(storage, provider, core.NewStateStore(core.StateStoreConfig{}), nil)

	info, err := service.GetUserInfo(context.Background(), "12345678901234")
	if err != nil {
		t.Fatalf("GetUserInfo() error = %v", err)
	}
	if info.Token != "winning-token" {
		t.Errorf("Token = %q, want the winning row's token", info.Token)
	}
}

// Requirement: provider failures during lookup surface as taxonomy
// errors, not as panics or generic errors.
func TestAuthService_GetUserInfo_ProviderFailures(t *testing.T) {
	tests := []struct {
		name     string
		provider *FakeProvider
		wantErr  error
	}{
		{
			name:     "profile fetch fails",
			provider: &FakeProvider{fetchErr: core.ErrProfileFetchFailed},
			wantErr:  core.ErrProfileFetchFailed,
		},
		{
			name:     "malformed profile",
			provider: &FakeProvider{profileDoc: map[string]any{}},
			wantErr:  core.ErrMalformedProfile,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			storage, _ := enrolledStorage(t, "12345678901234")
			service := NewAuthService(storage, test.provider, core.NewStateStore(core.StateStoreConfig{}), nil)

			_, err := service.GetUserInfo(context.Background(), "12345678901234")
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("GetUserInfo() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}
