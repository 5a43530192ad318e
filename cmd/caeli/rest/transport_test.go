package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caeli-works/caeli-api-types/auth"
	"github.com/caeli-works/caeli-api-types/entities"
	kprof "github.com/caeli-works/caeli/cmd/caeli/config/profiles"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/pkg/utils/try"
)

func seedCredentials(t *testing.T) (credPath string, session *krst.Session) {
	t.Helper()

	dir := t.TempDir()
	credPath = filepath.Join(dir, "credentials")
	content := "" +
		"default:\n" +
		"    caeli_auth_token: stale-token\n" +
		"    caeli_refresh_token: refresh-1\n"
	if err := os.WriteFile(credPath, []byte(content), os.FileMode(0600)); err != nil {
		t.Fatal(err)
	}

	session = try.To(krst.NewSession(credPath, "default")).OrFatal(t)
	return credPath, session
}

func TestAuthTransport(t *testing.T) {
	t.Run("concurrent 401s trigger exactly one refresh, then all replay", func(t *testing.T) {
		refreshes := int32(0)

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&refreshes, 1)

			var req auth.RefreshRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Error(err)
			}
			if req.RefreshToken != "refresh-1" {
				t.Errorf("unexpected refresh token: %s", req.RefreshToken)
			}

			// hold the refresh open so every 401ed request queues on it
			time.Sleep(100 * time.Millisecond)

			w.Header().Set("Content-Type", "application/json")
			body := try.To(json.Marshal(auth.TokenPair{
				AccessToken:  "fresh-token",
				RefreshToken: "refresh-2",
			})).OrFatal(t)
			w.Write(body)
		})
		mux.HandleFunc("/v1/entities/", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if r.Header.Get("X-Caeli-Request-Id") == "" {
				t.Error("request id header is missing")
			}
			w.Header().Set("Content-Type", "application/json")
			body := try.To(json.Marshal(entities.Detail{
				Summary: entities.Summary{Id: filepath.Base(r.URL.Path)},
			})).OrFatal(t)
			w.Write(body)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		_, session := seedCredentials(t)
		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, session)).OrFatal(t)

		ctx := context.Background()
		n := 6
		errs := make([]error, n)

		wg := sync.WaitGroup{}
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = testee.GetEntity(ctx, fmt.Sprintf("ent-%d", i))
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				t.Errorf("request %d failed: %s", i, err)
			}
		}
		if got := atomic.LoadInt32(&refreshes); got != 1 {
			t.Errorf("refresh should run once (actual = %d)", got)
		}

		if tok, ok := session.Token(); !ok || tok != "fresh-token" {
			t.Errorf("session should hold the refreshed token (actual = %s)", tok)
		}
	})

	t.Run("an expired token is refreshed before the request goes out", func(t *testing.T) {
		refreshes := int32(0)
		protected := int32(0)

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&refreshes, 1)
			w.Header().Set("Content-Type", "application/json")
			body := try.To(json.Marshal(auth.TokenPair{
				AccessToken:  "fresh-token",
				RefreshToken: "refresh-2",
			})).OrFatal(t)
			w.Write(body)
		})
		mux.HandleFunc("/v1/entities/", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&protected, 1)
			if got := r.Header.Get("Authorization"); got != "Bearer fresh-token" {
				t.Errorf("expired token reached the server: %s", got)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			body := try.To(json.Marshal(entities.Detail{
				Summary: entities.Summary{Id: "ent-1"},
			})).OrFatal(t)
			w.Write(body)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		dir := t.TempDir()
		credPath := filepath.Join(dir, "credentials")
		content := fmt.Sprintf(""+
			"default:\n"+
			"    caeli_auth_token: %s\n"+
			"    caeli_refresh_token: refresh-1\n",
			signedToken(t, time.Now().Add(-1*time.Minute)),
		)
		if err := os.WriteFile(credPath, []byte(content), os.FileMode(0600)); err != nil {
			t.Fatal(err)
		}
		session := try.To(krst.NewSession(credPath, "default")).OrFatal(t)

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, session)).OrFatal(t)

		try.To(testee.GetEntity(context.Background(), "ent-1")).OrFatal(t)

		if got := atomic.LoadInt32(&refreshes); got != 1 {
			t.Errorf("refresh should run once, up front (actual = %d)", got)
		}
		if got := atomic.LoadInt32(&protected); got != 1 {
			t.Errorf("the entity endpoint should be hit once (actual = %d)", got)
		}
	})

	t.Run("a failed refresh clears stored credentials and demands login", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		mux.HandleFunc("/v1/entities/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		credPath, session := seedCredentials(t)
		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, session)).OrFatal(t)

		_, err := testee.GetEntity(context.Background(), "ent-1")
		if !errors.Is(err, krst.ErrLoginRequired) {
			t.Fatalf("error should be ErrLoginRequired (actual = %v)", err)
		}

		if _, ok := session.Token(); ok {
			t.Error("session should have no token after failed refresh")
		}

		store := try.To(kprof.LoadCredentialStore(credPath)).OrFatal(t)
		if !store.Get("default").Empty() {
			t.Error("credential store should be cleared on disk")
		}
	})

	t.Run("session endpoints are excluded from 401 interception", func(t *testing.T) {
		refreshes := int32(0)

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&refreshes, 1)
			w.WriteHeader(http.StatusUnauthorized)
		})
		mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		_, session := seedCredentials(t)
		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, session)).OrFatal(t)

		_, err := testee.Me(context.Background())
		if !errors.Is(err, krst.ErrLoginRequired) {
			t.Fatalf("error should be ErrLoginRequired (actual = %v)", err)
		}

		if got := atomic.LoadInt32(&refreshes); got != 0 {
			t.Errorf("401 from /auth/me should not trigger refresh (actual = %d)", got)
		}
	})

	t.Run("requests without credentials carry no Authorization", func(t *testing.T) {
		var sawAuth atomic.Bool
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/entities/", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				sawAuth.Store(true)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"ent-1","name":"","type":""}`))
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		try.To(testee.GetEntity(context.Background(), "ent-1")).OrFatal(t)

		if sawAuth.Load() {
			t.Error("anonymous client should not send Authorization")
		}
	})
}
