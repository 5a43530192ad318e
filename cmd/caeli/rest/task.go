package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/caeli-works/caeli-api-types/tasks"
	"github.com/caeli-works/caeli/pkg/taskwatch"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func (c *client) GetTask(ctx context.Context, taskId string) (tasks.Task, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "tasks", taskId), nil)
	if err != nil {
		return tasks.Task{}, err
	}
	defer resp.Body.Close()

	var task tasks.Task
	if err := unmarshalJsonResponse(
		resp, &task,
		MessageFor{
			Status4xx: fmt.Sprintf("task:%v is not found", taskId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return tasks.Task{}, err
	}
	return task, nil
}

func (c *client) CancelTask(ctx context.Context, taskId string) (tasks.Task, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("v1", "tasks", taskId, "cancel"), nil,
	)
	if err != nil {
		return tasks.Task{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return tasks.Task{}, err
	}
	defer resp.Body.Close()

	var task tasks.Task
	if err := unmarshalJsonResponse(
		resp, &task,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot cancel task:%v (already finished?)", taskId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return tasks.Task{}, err
	}
	return task, nil
}

func (c *client) DialTaskEvents(ctx context.Context, taskId string) (taskwatch.EventStream, error) {
	wsurl := toWsScheme(c.apipath("v1", "tasks", taskId, "events"))

	// the handshake goes through httpclient, so it carries the same
	// Authorization and request id as any other call.
	conn, _, err := websocket.Dial(ctx, wsurl, &websocket.DialOptions{
		HTTPClient: c.httpclient,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", taskwatch.ErrWatchUnavailable, err)
	}

	return &taskEventStream{conn: conn}, nil
}

type taskEventStream struct {
	conn *websocket.Conn
}

func (s *taskEventStream) Next(ctx context.Context) (tasks.Event, error) {
	var ev tasks.Event
	if err := wsjson.Read(ctx, s.conn, &ev); err != nil {
		return tasks.Event{}, err
	}
	return ev, nil
}

func (s *taskEventStream) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "done")
}

func toWsScheme(rawurl string) string {
	switch {
	case strings.HasPrefix(rawurl, "https://"):
		return "wss://" + strings.TrimPrefix(rawurl, "https://")
	case strings.HasPrefix(rawurl, "http://"):
		return "ws://" + strings.TrimPrefix(rawurl, "http://")
	default:
		return rawurl
	}
}
