package credentials

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const bcryptPrefix = "{bcrypt}"

var errUnsupportedEncoding = errors.New("unsupported password encoding")

// compareHash is swapped in tests.
var compareHash = bcrypt.CompareHashAndPassword

// dummyHash is compared against for unknown users so lookups of missing and
// existing accounts cost the same.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("anime-registry-dummy"), bcrypt.DefaultCost)
	return h
})

// HashPassword returns a "{bcrypt}"-prefixed hash of password.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return bcryptPrefix + string(h), nil
}

// comparePassword checks password against a stored hash, with or without the
// "{bcrypt}" prefix. Any other "{id}" prefix is refused.
func comparePassword(stored, password string) error {
	hash := stored
	if strings.HasPrefix(hash, "{") {
		id, rest, ok := strings.Cut(hash[1:], "}")
		if !ok || id != "bcrypt" {
			return errUnsupportedEncoding
		}
		hash = rest
	}
	return compareHash([]byte(hash), []byte(password))
}
