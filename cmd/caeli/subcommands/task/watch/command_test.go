package watch_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/caeli-works/caeli-api-types/tasks"
	"github.com/caeli-works/caeli/cmd/caeli/env"
	"github.com/caeli-works/caeli/cmd/caeli/rest/mock"
	"github.com/caeli-works/caeli/cmd/caeli/subcommands/logger"
	testctx "github.com/caeli-works/caeli/internal/testutils/context"
	"github.com/caeli-works/caeli/pkg/taskwatch"
	task_watch "github.com/caeli-works/caeli/cmd/caeli/subcommands/task/watch"
)

type fakeStream struct {
	events []tasks.Event
	closed bool
}

func (s *fakeStream) Next(ctx context.Context) (tasks.Event, error) {
	if len(s.events) == 0 {
		<-ctx.Done()
		return tasks.Event{}, ctx.Err()
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

func TestWatchTask_overEventStream(t *testing.T) {
	ctx, cancel := testctx.WithTest(context.Background(), t)
	defer cancel()

	stream := &fakeStream{
		events: []tasks.Event{
			{Task: tasks.Task{TaskId: "task-1", Kind: tasks.KindCrawl, Status: tasks.Running}},
			{Task: tasks.Task{TaskId: "task-1", Kind: tasks.KindCrawl, Status: tasks.Completed}},
		},
	}

	client := mock.New(t)
	client.Impl.DialTaskEvents = func(_ context.Context, taskId string) (taskwatch.EventStream, error) {
		return stream, nil
	}

	stdout := new(strings.Builder)
	err := task_watch.WatchTask(
		ctx, logger.Null(), env.CaeliEnv{}, client, stdout, "task-1",
	)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	if !stream.closed {
		t.Error("the event stream is not closed")
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("2 states should be dumped (actual: %d)", len(lines))
	}
	last := tasks.Task{}
	if err := json.Unmarshal([]byte(lines[1]), &last); err != nil {
		t.Fatal(err)
	}
	if last.Status != tasks.Completed {
		t.Errorf("the last dumped state should be terminal (actual: %s)", last.Status)
	}
}

func TestWatchTask_fallsBackToPolling(t *testing.T) {
	ctx, cancel := testctx.WithTest(context.Background(), t)
	defer cancel()

	statuses := []tasks.Status{tasks.Pending, tasks.Running, tasks.Completed}

	client := mock.New(t)
	client.Impl.DialTaskEvents = func(_ context.Context, taskId string) (taskwatch.EventStream, error) {
		return nil, fmt.Errorf("%w: no websocket here", taskwatch.ErrWatchUnavailable)
	}
	client.Impl.GetTask = func(_ context.Context, taskId string) (tasks.Task, error) {
		st := statuses[0]
		if 1 < len(statuses) {
			statuses = statuses[1:]
		}
		return tasks.Task{TaskId: taskId, Kind: tasks.KindEnrichment, Status: st}, nil
	}

	caeliEnv := env.CaeliEnv{PollInterval: "10ms"}

	stdout := new(strings.Builder)
	start := time.Now()
	err := task_watch.WatchTask(
		ctx, logger.Null(), caeliEnv, client, stdout, "task-2",
	)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}

	if calls := len(client.Calls.GetTask); calls != 3 {
		t.Errorf("GetTask should be polled 3 times (actual: %d)", calls)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("polls should be spaced by the configured interval (elapsed: %s)", elapsed)
	}
}

func TestWatchTask_failedTaskIsAnError(t *testing.T) {
	ctx, cancel := testctx.WithTest(context.Background(), t)
	defer cancel()

	client := mock.New(t)
	client.Impl.DialTaskEvents = func(_ context.Context, taskId string) (taskwatch.EventStream, error) {
		return &fakeStream{
			events: []tasks.Event{
				{Task: tasks.Task{
					TaskId: taskId, Kind: tasks.KindAnalysis,
					Status: tasks.Failed, Error: "model overloaded",
				}},
			},
		}, nil
	}

	err := task_watch.WatchTask(
		ctx, logger.Null(), env.CaeliEnv{}, client, new(strings.Builder), "task-3",
	)
	if err == nil {
		t.Fatal("a failed task should be reported as an error")
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("the task error should be part of the message: %s", err)
	}
}
