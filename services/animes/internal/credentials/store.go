// Package credentials looks up and verifies the users allowed to call the
// anime API.
package credentials

import (
	"context"
	"errors"
)

var ErrUnknownUser = errors.New("unknown user")

// Credential is a stored user. PasswordHash carries an optional encoder
// prefix such as "{bcrypt}".
type Credential struct {
	Username     string
	Name         string
	PasswordHash string
	Roles        []string
}

// Store defines the contract for credential lookup.
type Store interface {
	// Lookup returns ErrUnknownUser when username does not exist.
	Lookup(ctx context.Context, username string) (Credential, error)
}
