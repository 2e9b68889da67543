package core

import "time"

// User is the local identity record, keyed by the national PINFL.
//
// Created on first enrollment or first lookup of an unseen PINFL,
// never mutated or deleted afterwards.
type User struct {
	ID        int64     `json:"id"`
	PINFL     string    `json:"pinfl"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential is one grant obtained from the identity provider.
//
// Rows are append-only: every successful code exchange inserts a new
// one, and the row with the highest id for a user is the current grant.
type Credential struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	Scope        string    `json:"scope"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccessToken is the opaque token this service issues to its own
// callers, decoupled from the provider's OAuth tokens. One per user,
// created lazily, immutable once issued.
type AccessToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"access_token"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is the parsed payload of a successful code exchange.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// MinimalProfile is the projection of the provider's verbose profile
// document down to the fields this service cares about.
type MinimalProfile struct {
	PINFL      string `json:"pinfl"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	BirthDate  string `json:"birth_date"`
	Region     string `json:"region"`
	RegionID   int    `json:"region_id"`
	District   string `json:"district"`
	DistrictID int    `json:"district_id"`
}

// EnrollmentResult is returned once an authorization code has been
// exchanged and the user and credential rows are persisted.
type EnrollmentResult struct {
	User       *User       `json:"user"`
	Credential *Credential `json:"credential"`
}

// UserInfo combines the local identity, the locally issued token and
// the current provider profile for a single user.
type UserInfo struct {
	UserID  int64           `json:"user_id"`
	Token   string          `json:"access_token"`
	Profile *MinimalProfile `json:"profile"`
}
