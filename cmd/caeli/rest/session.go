package rest

import (
	"errors"
	"sync"
	"time"

	"github.com/caeli-works/caeli-api-types/auth"
	kprof "github.com/caeli-works/caeli/cmd/caeli/config/profiles"
	"github.com/golang-jwt/jwt/v5"
)

// ErrLoginRequired is returned when a request needs credentials which
// the session does not have, or cannot renew anymore.
//
// Commands receiving this should tell the user to run `caeli login`.
var ErrLoginRequired = errors.New("login required (run `caeli login`)")

// Session holds the access/refresh token pair of one profile and keeps
// the on-disk credential store in sync with it.
//
// All methods are safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	profile string
	path    string
	current kprof.Credentials
}

// NewSession loads the credentials of the named profile from the
// credential store at path. A missing store or profile yields an
// anonymous session, not an error.
func NewSession(path string, profile string) (*Session, error) {
	store, err := kprof.LoadCredentialStore(path)
	if err != nil {
		return nil, err
	}
	return &Session{
		profile: profile,
		path:    path,
		current: store.Get(profile),
	}, nil
}

// AnonymousSession is a Session which never has credentials and
// persists nothing. Requests made with it carry no Authorization.
func AnonymousSession() *Session {
	return &Session{}
}

// Token returns the current access token. ok is false for an
// anonymous session.
func (s *Session) Token() (token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.AuthToken, s.current.AuthToken != ""
}

// RefreshToken returns the current refresh token, if any.
func (s *Session) RefreshToken() (token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.RefreshToken, s.current.RefreshToken != ""
}

// Expiry reports when the access token expires.
//
// The exp claim of the token itself wins over the stored expiry;
// servers are the authority on their own tokens. ok is false when
// neither is available.
func (s *Session) Expiry() (at time.Time, ok bool) {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	if exp, ok := tokenExpiry(cur.AuthToken); ok {
		return exp, true
	}
	if exp := cur.Expiry(); !exp.IsZero() {
		return exp, true
	}
	return time.Time{}, false
}

// Expired reports whether the access token is expired (or will be
// within skew). Tokens with no known expiry are assumed live until
// the server says otherwise.
func (s *Session) Expired(now time.Time, skew time.Duration) bool {
	exp, ok := s.Expiry()
	if !ok {
		return false
	}
	return !now.Add(skew).Before(exp)
}

// Update replaces the session's tokens and persists them.
func (s *Session) Update(pair auth.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = kprof.Credentials{
		AuthToken:    pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenExpiry:  pair.ExpiresAt.Time().Format(time.RFC3339),
	}
	return s.persist()
}

// Clear drops the session's tokens, in memory and on disk.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = kprof.Credentials{}
	return s.persist()
}

// persist writes the current credentials through to the store file.
// Reloading before writing keeps other profiles in the store intact.
// Caller should hold s.mu.
func (s *Session) persist() error {
	if s.path == "" {
		return nil
	}
	store, err := kprof.LoadCredentialStore(s.path)
	if err != nil {
		return err
	}
	if s.current.Empty() {
		store.Clear(s.profile)
	} else {
		store.Set(s.profile, s.current)
	}
	return store.Save(s.path)
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature. Verification is the server's job; the client only wants
// a hint to renew before hitting 401.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
