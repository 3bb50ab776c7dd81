package session

import (
	"context"
	"errors"
)

// Keys under which credentials are persisted. All three are cleared together.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUserEmail    = "userEmail"
)

var ErrEmptyID = errors.New("session: empty id")

type State string

const (
	StateAbsent State = "absent"
	StateIssued State = "issued"
)

// Credentials are the tokens the backend issued for one client. Values are
// opaque and stored verbatim; expiry is only discovered through a 401.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Email        string
}

// Issued builds credentials after a successful login or registration.
func Issued(accessToken, refreshToken, email string) Credentials {
	return Credentials{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Email:        email,
	}
}

// Refreshed returns a copy carrying a new token pair. The email is kept.
func (c Credentials) Refreshed(accessToken, refreshToken string) Credentials {
	c.AccessToken = accessToken
	c.RefreshToken = refreshToken
	return c
}

func (c Credentials) State() State {
	if c.AccessToken == "" {
		return StateAbsent
	}
	return StateIssued
}

func (c Credentials) IsZero() bool {
	return c == Credentials{}
}

func (c Credentials) toMap() map[string]string {
	return map[string]string{
		KeyAccessToken:  c.AccessToken,
		KeyRefreshToken: c.RefreshToken,
		KeyUserEmail:    c.Email,
	}
}

func fromMap(m map[string]string) Credentials {
	return Credentials{
		AccessToken:  m[KeyAccessToken],
		RefreshToken: m[KeyRefreshToken],
		Email:        m[KeyUserEmail],
	}
}

// Store persists credentials per id. An id is a web session or a CLI profile.
// Loading an unknown id returns zero Credentials and no error.
type Store interface {
	Load(ctx context.Context, id string) (Credentials, error)
	Save(ctx context.Context, id string, creds Credentials) error
	Clear(ctx context.Context, id string) error
}
