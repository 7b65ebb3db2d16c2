package credentials

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/auth"
)

// Authenticator verifies Basic credentials against a Store.
type Authenticator struct {
	Store Store
	Log   *zap.Logger
}

func NewAuthenticator(store Store, log *zap.Logger) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{Store: store, Log: log}
}

// Authenticate returns auth.ErrBadCredentials for unknown users and wrong
// passwords; lookup failures are returned as is.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (auth.Principal, error) {
	c, err := a.Store.Lookup(ctx, username)
	if errors.Is(err, ErrUnknownUser) {
		_ = compareHash(dummyHash(), []byte(password))
		return auth.Principal{}, auth.ErrBadCredentials
	}
	if err != nil {
		return auth.Principal{}, err
	}

	if err := comparePassword(c.PasswordHash, password); err != nil {
		if errors.Is(err, errUnsupportedEncoding) {
			a.Log.Warn("stored password uses an unsupported encoding", zap.String("user", username))
		}
		return auth.Principal{}, auth.ErrBadCredentials
	}
	return auth.Principal{Username: c.Username, Roles: c.Roles}, nil
}
