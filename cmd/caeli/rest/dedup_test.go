package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caeli-works/caeli-api-types/entities"
	kprof "github.com/caeli-works/caeli/cmd/caeli/config/profiles"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/pkg/utils/try"
)

func TestDeduplicatedGet(t *testing.T) {
	t.Run("concurrent identical GETs share one upstream request", func(t *testing.T) {
		hits := int32(0)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)

			// hold the response open so every caller joins the flight
			time.Sleep(50 * time.Millisecond)

			w.Header().Set("Content-Type", "application/json")
			body := try.To(json.Marshal(entities.Detail{
				Summary: entities.Summary{Id: "ent-1", Name: "acme", Type: "company"},
			})).OrFatal(t)
			w.Write(body)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		ctx := context.Background()
		n := 8
		results := make([]entities.Detail, n)
		errs := make([]error, n)

		wg := sync.WaitGroup{}
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = testee.GetEntity(ctx, "ent-1")
			}(i)
		}
		wg.Wait()

		for i := 0; i < n; i++ {
			if errs[i] != nil {
				t.Fatalf("request %d failed: %s", i, errs[i])
			}
			if results[i].Id != "ent-1" {
				t.Errorf("request %d got unexpected entity: %v", i, results[i])
			}
		}

		if got := atomic.LoadInt32(&hits); got != 1 {
			t.Errorf("server should be hit once (actual = %d)", got)
		}
	})

	t.Run("a GET after the linger window hits the server again", func(t *testing.T) {
		hits := int32(0)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.Header().Set("Content-Type", "application/json")
			body := try.To(json.Marshal(entities.Detail{
				Summary: entities.Summary{Id: "ent-1"},
			})).OrFatal(t)
			w.Write(body)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		ctx := context.Background()
		try.To(testee.GetEntity(ctx, "ent-1")).OrFatal(t)

		// well past the 100ms linger
		time.Sleep(250 * time.Millisecond)

		try.To(testee.GetEntity(ctx, "ent-1")).OrFatal(t)

		if got := atomic.LoadInt32(&hits); got != 2 {
			t.Errorf("server should be hit twice (actual = %d)", got)
		}
	})

	t.Run("GETs with the same params in different order share one request", func(t *testing.T) {
		hits := int32(0)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			time.Sleep(50 * time.Millisecond)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("[]"))
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		ctx := context.Background()
		filter := krst.EntityFilter{Type: "company", Query: "acme"}

		wg := sync.WaitGroup{}
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := testee.FindEntities(ctx, filter); err != nil {
					t.Error(err)
				}
			}()
		}
		wg.Wait()

		if got := atomic.LoadInt32(&hits); got != 1 {
			t.Errorf("server should be hit once (actual = %d)", got)
		}
	})

	t.Run("GETs with different param values each hit the server", func(t *testing.T) {
		hits := int32(0)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			time.Sleep(50 * time.Millisecond)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("[]"))
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		ctx := context.Background()
		wg := sync.WaitGroup{}
		for _, q := range []string{"acme", "globex"} {
			wg.Add(1)
			go func(q string) {
				defer wg.Done()
				filter := krst.EntityFilter{Type: "company", Query: q}
				if _, err := testee.FindEntities(ctx, filter); err != nil {
					t.Error(err)
				}
			}(q)
		}
		wg.Wait()

		if got := atomic.LoadInt32(&hits); got != 2 {
			t.Errorf("each distinct query should hit the server (actual = %d)", got)
		}
	})

	t.Run("all callers sharing a flight see its error", func(t *testing.T) {
		hits := int32(0)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			time.Sleep(50 * time.Millisecond)
			w.WriteHeader(http.StatusInternalServerError)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		ctx := context.Background()
		n := 6
		errs := make([]error, n)

		wg := sync.WaitGroup{}
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = testee.GetEntity(ctx, "ent-1")
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			if err == nil {
				t.Fatalf("request %d should fail", i)
			}
			if err.Error() != errs[0].Error() {
				t.Errorf("request %d got a different error: %v (want %v)", i, err, errs[0])
			}
		}
		if got := atomic.LoadInt32(&hits); got != 1 {
			t.Errorf("server should be hit once (actual = %d)", got)
		}
	})

	t.Run("mutating requests are never deduplicated", func(t *testing.T) {
		hits := int32(0)
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.Header().Set("Content-Type", "application/json")
			body := try.To(json.Marshal(entities.Detail{
				Summary: entities.Summary{Id: "ent-new"},
			})).OrFatal(t)
			w.Write(body)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		ctx := context.Background()
		spec := entities.Spec{Name: "acme", Type: "company"}
		try.To(testee.RegisterEntity(ctx, spec)).OrFatal(t)
		try.To(testee.RegisterEntity(ctx, spec)).OrFatal(t)

		if got := atomic.LoadInt32(&hits); got != 2 {
			t.Errorf("each POST should hit the server (actual hits = %d)", got)
		}
	})
}
