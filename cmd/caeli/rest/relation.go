package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/caeli-works/caeli-api-types/relations"
)

func (c *client) FindRelations(ctx context.Context, filter RelationFilter) ([]relations.Relation, error) {
	q := url.Values{}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}
	if filter.FromId != "" {
		q.Set("from", filter.FromId)
	}
	if filter.ToId != "" {
		q.Set("to", filter.ToId)
	}

	resp, err := c.dedupGet(ctx, c.apipath("v1", "relations"), q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]relations.Relation, 0, 5)
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

func (c *client) FindRelationTypes(ctx context.Context) ([]relations.RelationType, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "relation-types"), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	types := make([]relations.RelationType, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &types,
		MessageFor{
			Status4xx: fmt.Sprintf("[BUG] client is not compatible with the server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *client) RegisterRelation(ctx context.Context, spec relations.Spec) (relations.Relation, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return relations.Relation{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("v1", "relations"), bytes.NewReader(body),
	)
	if err != nil {
		return relations.Relation{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return relations.Relation{}, err
	}
	defer resp.Body.Close()

	var created relations.Relation
	if err := unmarshalJsonResponse(
		resp, &created,
		MessageFor{
			Status4xx: "relation is rejected by server",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return relations.Relation{}, err
	}
	return created, nil
}

func (c *client) DeleteRelation(ctx context.Context, relationId string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.apipath("v1", "relations", relationId), nil,
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
			Status4xx: fmt.Sprintf("cannot delete relation:%v", relationId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}
