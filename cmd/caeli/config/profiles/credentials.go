package profiles

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Credentials is the persisted session of one profile.
//
// The field names are the fixed storage keys of the Caeli frontend family;
// the web client keeps the same triple in browser localStorage.
type Credentials struct {
	AuthToken    string `yaml:"caeli_auth_token"`
	RefreshToken string `yaml:"caeli_refresh_token"`
	TokenExpiry  string `yaml:"caeli_token_expiry,omitempty"`
}

func (c Credentials) Empty() bool {
	return c.AuthToken == "" && c.RefreshToken == ""
}

// Expiry parses the stored token expiry, zero time when absent or broken.
func (c Credentials) Expiry() time.Time {
	if c.TokenExpiry == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, c.TokenExpiry)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CredentialStore is a map from profile name to its Credentials,
// persisted as a 0600 yaml file next to the profile store.
type CredentialStore map[string]*Credentials

// LoadCredentialStore loads the credential store from file.
//
// A missing file is an empty store, not an error: not being logged in
// is a normal state.
func LoadCredentialStore(filepath string) (CredentialStore, error) {
	buf, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return CredentialStore{}, nil
		}
		return nil, err
	}

	ret := CredentialStore{}
	if err := yaml.Unmarshal(buf, &ret); err != nil {
		return nil, fmt.Errorf("credential store is broken: %w", err)
	}
	return ret, nil
}

// Save credential store to file.
func (cs *CredentialStore) Save(path string) error {
	return saveConfigFile(path, cs)
}

// Set records the credentials for a profile.
func (cs CredentialStore) Set(profile string, c Credentials) {
	cp := c
	cs[profile] = &cp
}

// Get returns the credentials of a profile, empty when absent.
func (cs CredentialStore) Get(profile string) Credentials {
	if c, ok := cs[profile]; ok && c != nil {
		return *c
	}
	return Credentials{}
}

// Clear drops the credentials of a profile.
func (cs CredentialStore) Clear(profile string) {
	delete(cs, profile)
}
