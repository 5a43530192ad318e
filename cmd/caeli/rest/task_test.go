package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caeli-works/caeli-api-types/tasks"
	kprof "github.com/caeli-works/caeli/cmd/caeli/config/profiles"
	krst "github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/pkg/taskwatch"
	"github.com/caeli-works/caeli/pkg/utils/try"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func TestGetTask(t *testing.T) {
	t.Run("when server returns a task, it returns that as is", func(t *testing.T) {
		expectedResponse := tasks.Task{
			TaskId: "task-1",
			Kind:   tasks.KindEnrichment,
			Status: tasks.Running,
			Progress: tasks.Progress{
				Done: 4, Total: 10,
			},
		}

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/tasks/task-1" {
				t.Errorf("request path is wrong: %s", r.URL.Path)
			}
			w.Header().Add("Content-Type", "application/json")
			body := try.To(json.Marshal(expectedResponse)).OrFatal(t)
			w.Write(body)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		actualResponse := try.To(testee.GetTask(context.Background(), "task-1")).OrFatal(t)
		if !actualResponse.Equal(expectedResponse) {
			t.Errorf("response is not equal (actual,expected): %v,%v", actualResponse, expectedResponse)
		}
	})
}

func TestDialTaskEvents(t *testing.T) {
	t.Run("it receives events until the server closes the stream", func(t *testing.T) {
		statuses := []tasks.Status{
			tasks.Running, tasks.Running, tasks.Completed,
		}

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/tasks/task-1/events" {
				t.Errorf("request path is wrong: %s", r.URL.Path)
			}
			conn, err := websocket.Accept(w, r, nil)
			if err != nil {
				t.Error(err)
				return
			}
			defer conn.Close(websocket.StatusNormalClosure, "done")

			ctx := r.Context()
			for _, status := range statuses {
				ev := tasks.Event{Task: tasks.Task{TaskId: "task-1", Status: status}}
				if err := wsjson.Write(ctx, conn, ev); err != nil {
					t.Error(err)
					return
				}
			}
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		stream := try.To(testee.DialTaskEvents(ctx, "task-1")).OrFatal(t)
		defer stream.Close()

		for i, expected := range statuses {
			ev, err := stream.Next(ctx)
			if err != nil {
				t.Fatalf("event %d: %s", i, err)
			}
			if ev.Task.Status != expected {
				t.Errorf("event %d: status should be %s (actual = %s)", i, expected, ev.Task.Status)
			}
		}
	})

	t.Run("a server without the stream yields ErrWatchUnavailable", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		server := httptest.NewServer(handler)
		defer server.Close()

		profile := kprof.CaeliProfile{ApiRoot: server.URL}
		testee := try.To(krst.NewClient(&profile, krst.AnonymousSession())).OrFatal(t)

		_, err := testee.DialTaskEvents(context.Background(), "task-1")
		if !taskwatch.IsUnavailable(err) {
			t.Errorf("error should mark the watch unavailable (actual = %v)", err)
		}
	})
}
