package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/caeli-works/caeli-api-types/sources"
	"github.com/caeli-works/caeli-api-types/tasks"
)

func (c *client) FindSources(ctx context.Context, filter SourceFilter) ([]sources.Detail, error) {
	q := url.Values{}
	if filter.Kind != "" {
		q.Set("kind", filter.Kind)
	}
	if filter.Enabled != nil {
		q.Set("enabled", strconv.FormatBool(*filter.Enabled))
	}

	resp, err := c.dedupGet(ctx, c.apipath("admin", "sources"), q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]sources.Detail, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: "cannot list data sources: admin role may be required",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found, nil
}

func (c *client) GetSource(ctx context.Context, sourceId string) (sources.Detail, error) {
	resp, err := c.dedupGet(ctx, c.apipath("admin", "sources", sourceId), nil)
	if err != nil {
		return sources.Detail{}, err
	}
	defer resp.Body.Close()

	var detail sources.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("source:%v is not found", sourceId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return sources.Detail{}, err
	}
	return detail, nil
}

func (c *client) RegisterSource(ctx context.Context, spec sources.Spec) (sources.Detail, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return sources.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("admin", "sources"), bytes.NewReader(body),
	)
	if err != nil {
		return sources.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return sources.Detail{}, err
	}
	defer resp.Body.Close()

	var detail sources.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: "data source is rejected by server",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return sources.Detail{}, err
	}
	return detail, nil
}

func (c *client) UpdateSource(ctx context.Context, sourceId string, spec sources.Spec) (sources.Detail, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return sources.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.apipath("admin", "sources", sourceId), bytes.NewReader(body),
	)
	if err != nil {
		return sources.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return sources.Detail{}, err
	}
	defer resp.Body.Close()

	var detail sources.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update source:%v", sourceId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return sources.Detail{}, err
	}
	return detail, nil
}

func (c *client) DeleteSource(ctx context.Context, sourceId string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.apipath("admin", "sources", sourceId), nil,
	)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot delete source:%v", sourceId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}

func (c *client) StartCrawl(ctx context.Context, sourceId string) (tasks.Task, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("admin", "sources", sourceId, "crawl"), nil,
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
			Status4xx: fmt.Sprintf("cannot start crawl of source:%v (already running?)", sourceId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return tasks.Task{}, err
	}
	return task, nil
}
