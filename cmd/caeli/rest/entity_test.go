package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apierr "github.com/caeli-works/caeli-api-types/errors"
	"github.com/caeli-works/caeli-api-types/entities"
	"github.com/caeli-works/caeli-api-types/facets"
	"github.com/caeli-works/caeli-api-types/misc/rfctime"
	kprof "github.com/caeli-works/caeli/cmd/caeli/config/profiles"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/pkg/cmp"
	"github.com/caeli-works/caeli/pkg/utils/try"
)

func TestGetEntity(t *testing.T) {
	t.Run("when server returns an entity, it returns that as is", func(t *testing.T) {
		expectedResponse := entities.Detail{
			Summary: entities.Summary{
				Id:         "ent-1",
				Name:       "Acme Corp",
				ExternalId: "crm-0042",
				Type:       "company",
			},
			Attributes: map[string]string{
				"country": "NL",
			},
			FacetCount:    3,
			RelationCount: 2,
			CreatedAt: try.To(rfctime.ParseRFC3339DateTime(
				"2025-04-02T12:00:00+00:00",
			)).OrFatal(t),
			UpdatedAt: try.To(rfctime.ParseRFC3339DateTime(
				"2025-04-03T09:30:00+00:00",
			)).OrFatal(t),
		}

		var request *http.Request
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("request is not GET /v1/entities/:id (actual method = %s)", r.Method)
			}
			request = r

			w.Header().Add("Content-Type", "application/json")
			body := try.To(json.Marshal(expectedResponse)).OrFatal(t)
			w.WriteHeader(http.StatusOK)
			w.Write(body)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		actualResponse := try.To(testee.GetEntity(context.Background(), "ent-1")).OrFatal(t)
		if !actualResponse.Equal(expectedResponse) {
			t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
		}
		if request.URL.Path != "/v1/entities/ent-1" {
			t.Errorf("request path is wrong: %s", request.URL.Path)
		}
	})

	t.Run("a server responding with error is given", func(t *testing.T) {
		handlerFactory := func(t *testing.T, status int, message string) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Helper()
				w.WriteHeader(status)
				w.Header().Set("Content-Type", "application/json")

				buf := try.To(json.Marshal(
					apierr.ErrorMessage{Reason: message},
				)).OrFatal(t)
				w.Write(buf)
			})
		}
		for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
			t.Run(fmt.Sprintf("when server responding with %d, it returns error", status), func(t *testing.T) {
				handler := handlerFactory(t, status, "something wrong")
				server := httptest.NewServer(handler)
				defer server.Close()

				profile := kprof.CaeliProfile{ApiRoot: server.URL}
				testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

				if _, err := testee.GetEntity(context.Background(), "ent-1"); err == nil {
					t.Error("error is not returned")
				}
			})
		}
	})
}

func TestFindEntities(t *testing.T) {
	t.Run("it sends filter as query parameters", func(t *testing.T) {
		expectedResponse := []entities.Detail{
			{Summary: entities.Summary{Id: "ent-1", Name: "Acme Corp", Type: "company"}},
			{Summary: entities.Summary{Id: "ent-2", Name: "Acme Labs", Type: "company"}},
		}

		var request *http.Request
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			w.Header().Add("Content-Type", "application/json")
			body := try.To(json.Marshal(expectedResponse)).OrFatal(t)
			w.Write(body)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		actualResponse := try.To(testee.FindEntities(context.Background(), krst.EntityFilter{
			Type:  "company",
			Query: "acme",
		})).OrFatal(t)

		if !cmp.SliceEqWith(
			actualResponse, expectedResponse,
			func(a, b entities.Detail) bool { return a.Equal(b) },
		) {
			t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
		}

		q := request.URL.Query()
		if q.Get("type") != "company" || q.Get("q") != "acme" {
			t.Errorf("query is wrong: %s", request.URL.RawQuery)
		}
		if q.Has("parent") || q.Has("updatedSince") {
			t.Errorf("zero filter fields should not be sent: %s", request.URL.RawQuery)
		}
	})
}

func TestPutFacetsForEntity(t *testing.T) {
	t.Run("it PUTs the change and returns the new facet values", func(t *testing.T) {
		expectedChange := facets.Change{
			Set: []facets.Setting{
				{FacetKey: "industry", Value: json.RawMessage(`"logistics"`)},
			},
			Remove: []string{"fv-obsolete"},
		}
		expectedResponse := []facets.Value{
			{
				Id:         "fv-1",
				FacetKey:   "industry",
				Value:      json.RawMessage(`"logistics"`),
				Provenance: facets.FromManual,
				Verified:   true,
			},
		}

		var actualChange facets.Change
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("request is not PUT (actual method = %s)", r.Method)
			}
			if r.URL.Path != "/v1/entities/ent-1/facets" {
				t.Errorf("request path is wrong: %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&actualChange); err != nil {
				t.Fatal(err)
			}

			w.Header().Add("Content-Type", "application/json")
			body := try.To(json.Marshal(expectedResponse)).OrFatal(t)
			w.Write(body)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		actualResponse := try.To(
			testee.PutFacetsForEntity(context.Background(), "ent-1", expectedChange),
		).OrFatal(t)

		if !actualChange.Equal(expectedChange) {
			t.Errorf("sent change is not equal (actual,expected): %v,%v", actualChange, expectedChange)
		}
		if !cmp.SliceEqWith(
			actualResponse, expectedResponse,
			func(a, b facets.Value) bool { return a.Equal(b) },
		) {
			t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
		}
	})
}
