package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/caeli-works/caeli-api-types/ai"
	"github.com/caeli-works/caeli-api-types/tasks"
)

func (c *client) StartEnrichment(ctx context.Context, ereq ai.EnrichmentRequest) (tasks.Task, error) {
	return c.ai.Execute(func() (tasks.Task, error) {
		return c.postAITask(ctx, c.apipath("v1", "ai", "enrich"), ereq,
			fmt.Sprintf("cannot enrich entity:%v", ereq.EntityId))
	})
}

func (c *client) StartAnalysis(ctx context.Context, attachmentId string) (tasks.Task, error) {
	return c.ai.Execute(func() (tasks.Task, error) {
		return c.postAITask(ctx, c.apipath("v1", "attachments", attachmentId, "analyze"), nil,
			fmt.Sprintf("cannot analyse attachment:%v", attachmentId))
	})
}

func (c *client) postAITask(ctx context.Context, rawurl string, payload any, message4xx string) (tasks.Task, error) {
	var body *bytes.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return tasks.Task{}, err
		}
		body = bytes.NewReader(buf)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawurl, body)
	if err != nil {
		return tasks.Task{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return tasks.Task{}, err
	}
	defer resp.Body.Close()

	var task tasks.Task
	if err := unmarshalJsonResponse(
		resp, &task,
		MessageFor{
			Status4xx: message4xx,
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return tasks.Task{}, err
	}
	return task, nil
}
