package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/example/anime-registry/internal/platform/auth"
)

// SeedUser is one entry of a credentials seed file. Password is hashed at
// load time; PasswordHash is used as is.
type SeedUser struct {
	Name         string   `yaml:"name"`
	Username     string   `yaml:"username"`
	Password     string   `yaml:"password"`
	PasswordHash string   `yaml:"passwordHash"`
	Roles        []string `yaml:"roles"`
}

type seedFile struct {
	Users []SeedUser `yaml:"users"`
}

// DefaultSeed is the bootstrap pair used when no seed file is configured.
func DefaultSeed() []SeedUser {
	return []SeedUser{
		{Name: "Creator Jackson", Username: "jackson", Password: "root", Roles: []string{auth.RoleUser, auth.RoleAdmin}},
		{Name: "User", Username: "user", Password: "user", Roles: []string{auth.RoleUser}},
	}
}

// LoadSeedFile reads users from a YAML file of the form
//
//	users:
//	  - username: jackson
//	    password: root
//	    roles: [USER, ADMIN]
func LoadSeedFile(path string) ([]SeedUser, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("credentials file %s has no users", path)
	}
	return f.Users, nil
}

// ToCredential validates u and hashes its plain password with cost.
func (u SeedUser) ToCredential(cost int) (Credential, error) {
	username := strings.TrimSpace(u.Username)
	if username == "" {
		return Credential{}, fmt.Errorf("seed user without username")
	}
	hash := u.PasswordHash
	if hash == "" {
		if u.Password == "" {
			return Credential{}, fmt.Errorf("seed user %q has no password", username)
		}
		var err error
		if hash, err = HashPassword(u.Password, cost); err != nil {
			return Credential{}, err
		}
	}
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r = auth.NormalizeRole(r); r != "" {
			roles = append(roles, r)
		}
	}
	return Credential{Username: username, Name: u.Name, PasswordHash: hash, Roles: roles}, nil
}

// InMemoryStore is a bootstrap and test implementation.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]Credential
}

func NewInMemoryStore(creds ...Credential) *InMemoryStore {
	s := &InMemoryStore{users: make(map[string]Credential, len(creds))}
	for _, c := range creds {
		s.users[c.Username] = c
	}
	return s
}

// NewSeededStore hashes seed with the given bcrypt cost (0 for the default).
func NewSeededStore(seed []SeedUser, cost int) (*InMemoryStore, error) {
	creds := make([]Credential, 0, len(seed))
	for _, u := range seed {
		c, err := u.ToCredential(cost)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return NewInMemoryStore(creds...), nil
}

func (s *InMemoryStore) Lookup(_ context.Context, username string) (Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.users[username]
	if !ok {
		return Credential{}, ErrUnknownUser
	}
	return c, nil
}
