package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/caeli-works/caeli-api-types/facets"
)

func (c *client) GetFacets(ctx context.Context, entityId string) ([]facets.Value, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "entities", entityId, "facets"), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	values := make([]facets.Value, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &values,
		MessageFor{
			Status4xx: fmt.Sprintf("entity:%v is not found", entityId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return values, nil
}

func (c *client) PutFacetsForEntity(ctx context.Context, entityId string, change facets.Change) ([]facets.Value, error) {
	body, err := json.Marshal(change)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.apipath("v1", "entities", entityId, "facets"), bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	values := make([]facets.Value, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &values,
		MessageFor{
			Status4xx: fmt.Sprintf("facet change for entity:%v is rejected by server", entityId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return values, nil
}

func (c *client) VerifyFacet(ctx context.Context, facetId string, verified bool) (facets.Value, error) {
	body, err := json.Marshal(facets.VerifyRequest{Verified: verified})
	if err != nil {
		return facets.Value{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.apipath("v1", "facets", facetId, "verify"), bytes.NewReader(body),
	)
	if err != nil {
		return facets.Value{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return facets.Value{}, err
	}
	defer resp.Body.Close()

	var value facets.Value
	if err := unmarshalJsonResponse(
		resp, &value,
		MessageFor{
			Status4xx: fmt.Sprintf("facet:%v is not found", facetId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return facets.Value{}, err
	}
	return value, nil
}

func (c *client) FindFacetTypes(ctx context.Context) ([]facets.FacetType, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "facet-types"), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	types := make([]facets.FacetType, 0, 5)
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

func (c *client) RegisterFacetType(ctx context.Context, spec facets.FacetType) (facets.FacetType, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return facets.FacetType{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("v1", "facet-types"), bytes.NewReader(body),
	)
	if err != nil {
		return facets.FacetType{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return facets.FacetType{}, err
	}
	defer resp.Body.Close()

	var created facets.FacetType
	if err := unmarshalJsonResponse(
		resp, &created,
		MessageFor{
			Status4xx: "facet type is rejected by server",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return facets.FacetType{}, err
	}
	return created, nil
}
