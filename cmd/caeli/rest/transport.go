package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/caeli-works/caeli-api-types/auth"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Refresher exchanges a refresh token for a new token pair.
type Refresher func(ctx context.Context, refreshToken string) (auth.TokenPair, error)

// authTransport decorates a RoundTripper with the session handling of
// the Caeli API:
//
//   - every request gets a Bearer token (when logged in) and a fresh
//     X-Caeli-Request-Id,
//   - a token at or past its exp claim is refreshed before the
//     request goes out, so the server never sees it,
//   - a 401 from a non-auth endpoint triggers one token refresh and
//     one replay of the original request,
//   - a failed refresh clears the stored credentials and surfaces
//     ErrLoginRequired.
//
// Requests hitting 401 while a refresh is already running wait for it
// instead of firing their own: however many requests fail at once,
// the server sees a single refresh call.
// expirySkew widens the proactive expiry check so that a token which
// would die in transit is refreshed up front.
const expirySkew = 30 * time.Second

type authTransport struct {
	base    http.RoundTripper
	session *Session
	refresh Refresher
	limiter *rate.Limiter
	group   singleflight.Group
}

func newAuthTransport(
	base http.RoundTripper, session *Session, refresh Refresher, limiter *rate.Limiter,
) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{
		base:    base,
		session: session,
		refresh: refresh,
		limiter: limiter,
	}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req = req.Clone(ctx)
	req.Header.Set("X-Caeli-Request-Id", uuid.NewString())
	if tok, ok := t.session.Token(); ok {
		if !isAuthPath(req.URL.Path) && t.session.Expired(time.Now(), expirySkew) {
			if _, hasRefresh := t.session.RefreshToken(); hasRefresh {
				fresh, err := t.renew(ctx)
				if err != nil {
					return nil, err
				}
				tok = fresh
			}
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || isAuthPath(req.URL.Path) {
		return resp, nil
	}
	if req.Body != nil && req.GetBody == nil {
		// body already consumed and not replayable. let the caller
		// see the 401 rather than retry a truncated request.
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	tok, err := t.renew(ctx)
	if err != nil {
		return nil, err
	}

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+tok)
	retry.Header.Set("X-Caeli-Request-Id", uuid.NewString())
	return t.base.RoundTrip(retry)
}

// renew obtains a fresh access token. Concurrent callers are collapsed
// into one refresh request; all of them get its outcome.
func (t *authTransport) renew(ctx context.Context) (string, error) {
	v, err, _ := t.group.Do("refresh", func() (interface{}, error) {
		refreshToken, ok := t.session.RefreshToken()
		if !ok {
			return nil, ErrLoginRequired
		}

		pair, err := t.refresh(ctx, refreshToken)
		if err != nil {
			// the refresh token is spent or rejected. keeping it
			// would just repeat this failure on every request.
			t.session.Clear()
			return nil, fmt.Errorf("%w: token refresh rejected: %s", ErrLoginRequired, err)
		}

		if err := t.session.Update(pair); err != nil {
			return nil, err
		}
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// isAuthPath reports whether the path is one of the session endpoints.
// These never take part in 401 interception; refreshing in response to
// a failed refresh would loop.
func isAuthPath(path string) bool {
	for _, p := range []string{"/auth/login", "/auth/refresh", "/auth/me"} {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}
