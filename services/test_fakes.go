package services

import (
	"context"
	"errors"
	"sync"

	"github.com/sardor-dev/myid-auth/core"
)

// FakeAuthStorage is a test-only fake implementing core.AuthStorage.
// It stores records in maps and exposes error fields for behavior
// injection.
type FakeAuthStorage struct {
	mu     sync.RWMutex
	users  map[string]*core.User        // keyed by pinfl
	creds  []*core.Credential           // append-only, index order = id order
	tokens map[int64]*core.AccessToken  // keyed by user id

	nextUserID  int64
	nextCredID  int64
	nextTokenID int64

	upsertErr      error
	credGetErr     error
	credCreateErr  error
	tokenGetErr    error
	tokenCreateErr error

	// raceWinner simulates a concurrent writer: when tokenCreateErr is
	// ErrTokenExists, this token becomes visible to the re-read.
	raceWinner *core.AccessToken
}

func NewFakeAuthStorage() *FakeAuthStorage {
	return &FakeAuthStorage{
		users:  make(map[string]*core.User),
		tokens: make(map[int64]*core.AccessToken),
	}
}

func (f *FakeAuthStorage) UpsertUserByPINFL(ctx context.Context, pinfl string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.upsertErr != nil {
		return nil, f.upsertErr
	}

	if u, ok := f.users[pinfl]; ok {
		return u, nil
	}

	f.nextUserID++
	u := &core.User{ID: f.nextUserID, PINFL: pinfl}
	f.users[pinfl] = u
	return u, nil
}

func (f *FakeAuthStorage) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrUserNotFound
}

func (f *FakeAuthStorage) CreateCredential(ctx context.Context, c *core.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.credCreateErr != nil {
		return f.credCreateErr
	}

	f.nextCredID++
	c.ID = f.nextCredID
	f.creds = append(f.creds, c)
	return nil
}

func (f *FakeAuthStorage) GetLatestCredential(ctx context.Context, userID int64) (*core.Credential, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.credGetErr != nil {
		return nil, f.credGetErr
	}

	var latest *core.Credential
	for _, c := range f.creds {
		if c.UserID == userID && (latest == nil || c.ID > latest.ID) {
			latest = c
		}
	}
	if latest == nil {
		return nil, core.ErrCredentialNotFound
	}
	return latest, nil
}

func (f *FakeAuthStorage) CreateAccessToken(ctx context.Context, t *core.AccessToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tokenCreateErr != nil {
		if errors.Is(f.tokenCreateErr, core.ErrTokenExists) && f.raceWinner != nil {
			f.tokens[t.UserID] = f.raceWinner
		}
		return f.tokenCreateErr
	}

	if _, exists := f.tokens[t.UserID]; exists {
		return core.ErrTokenExists
	}

	f.nextTokenID++
	t.ID = f.nextTokenID
	f.tokens[t.UserID] = t
	return nil
}

func (f *FakeAuthStorage) GetAccessTokenByUser(ctx context.Context, userID int64) (*core.AccessToken, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.tokenGetErr != nil {
		return nil, f.tokenGetErr
	}

	t, ok := f.tokens[userID]
	if !ok {
		return nil, core.ErrTokenNotFound
	}
	return t, nil
}

func (f *FakeAuthStorage) GetAccessTokenByValue(ctx context.Context, value string) (*core.AccessToken, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, t := range f.tokens {
		if t.Token == value {
			return t, nil
		}
	}
	return nil, core.ErrTokenNotFound
}

// CredentialCount reports how many credential rows exist for a user.
func (f *FakeAuthStorage) CredentialCount(userID int64) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	count := 0
	for _, c := range f.creds {
		if c.UserID == userID {
			count++
		}
	}
	return count
}

// UserCount reports how many users exist.
func (f *FakeAuthStorage) UserCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.users)
}

// FakeProvider is a test-only fake implementing core.IdentityProvider.
// Responses are scripted; calls are recorded.
type FakeProvider struct {
	mu sync.Mutex

	authURL       string
	tokenResponse *core.TokenResponse
	profileDoc    map[string]any
	exchangeErr   error
	fetchErr      error

	exchangedCodes []string
	fetchedTokens  []string
}

func (f *FakeProvider) AuthorizationURL(state string) string {
	return f.authURL + "?state=" + state
}

func (f *FakeProvider) ExchangeCode(ctx context.Context, code string) (*core.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.exchangedCodes = append(f.exchangedCodes, code)
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.tokenResponse, nil
}

func (f *FakeProvider) FetchProfile(ctx context.Context, accessToken string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetchedTokens = append(f.fetchedTokens, accessToken)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.profileDoc, nil
}

// sampleProfileDoc mirrors a decoded provider response: object values
// are map[string]any, numbers are float64, ids may arrive as strings.
func sampleProfileDoc(pinfl string) map[string]any {
	return map[string]any{
		"profile": map[string]any{
			"common_data": map[string]any{
				"pinfl":       pinfl,
				"first_name":  "Alisher",
				"last_name":   "Karimov",
				"middle_name": "Bahodir o'g'li",
				"birth_date":  "1990-04-12",
			},
			"address": map[string]any{
				"permanent_registration": map[string]any{
					"region":      "Toshkent shahri",
					"region_id":   float64(11),
					"district":    "Yunusobod tumani",
					"district_id": "1102",
				},
			},
		},
	}
}
