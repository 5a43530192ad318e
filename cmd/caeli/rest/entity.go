package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/caeli-works/caeli-api-types/entities"
)

func (c *client) FindEntities(ctx context.Context, filter EntityFilter) ([]entities.Detail, error) {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}
	if filter.ParentId != "" {
		q.Set("parent", filter.ParentId)
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.UpdatedSince != nil {
		q.Set("updatedSince", *filter.UpdatedSince)
	}

	resp, err := c.dedupGet(ctx, c.apipath("v1", "entities"), q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]entities.Detail, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("[BUG] client is not compatible with the server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found, nil
}

func (c *client) GetEntity(ctx context.Context, entityId string) (entities.Detail, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "entities", entityId), nil)
	if err != nil {
		return entities.Detail{}, err
	}
	defer resp.Body.Close()

	var detail entities.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("entity:%v is not found", entityId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return entities.Detail{}, err
	}
	return detail, nil
}

func (c *client) GetEntityChildren(ctx context.Context, entityId string) ([]entities.Summary, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "entities", entityId, "children"), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	children := make([]entities.Summary, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &children,
		MessageFor{
			Status4xx: fmt.Sprintf("entity:%v is not found", entityId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return children, nil
}

func (c *client) RegisterEntity(ctx context.Context, spec entities.Spec) (entities.Detail, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return entities.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("v1", "entities"), bytes.NewReader(body),
	)
	if err != nil {
		return entities.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return entities.Detail{}, err
	}
	defer resp.Body.Close()

	var detail entities.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: "entity is rejected by server",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return entities.Detail{}, err
	}
	return detail, nil
}

func (c *client) UpdateEntity(ctx context.Context, entityId string, spec entities.Spec) (entities.Detail, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return entities.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.apipath("v1", "entities", entityId), bytes.NewReader(body),
	)
	if err != nil {
		return entities.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return entities.Detail{}, err
	}
	defer resp.Body.Close()

	var detail entities.Detail
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update entity:%v", entityId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return entities.Detail{}, err
	}
	return detail, nil
}

func (c *client) DeleteEntity(ctx context.Context, entityId string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.apipath("v1", "entities", entityId), nil,
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
			Status4xx: fmt.Sprintf("cannot delete entity:%v", entityId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}
