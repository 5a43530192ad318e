package auth

import (
	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the response of /auth/login and /auth/refresh.
type TokenPair struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresAt    rfctime.RFC3339 `json:"expiresAt"`
}

func (t TokenPair) Equal(o TokenPair) bool {
	return t.AccessToken == o.AccessToken &&
		t.RefreshToken == o.RefreshToken &&
		t.ExpiresAt.Equal(o.ExpiresAt)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Profile is the response of /auth/me.
type Profile struct {
	UserId   string   `json:"userId"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
}

func (p Profile) Equal(o Profile) bool {
	if len(p.Roles) != len(o.Roles) {
		return false
	}
	for i := range p.Roles {
		if p.Roles[i] != o.Roles[i] {
			return false
		}
	}
	return p.UserId == o.UserId &&
		p.Username == o.Username &&
		p.Email == o.Email
}
