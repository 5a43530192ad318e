package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ExportEntities streams an export download to handler. The export is
// a plain GET, but it is deliberately not deduplicated: exports are
// large, one-shot, and never worth caching.
func (c *client) ExportEntities(ctx context.Context, format string, handler func(r io.Reader) error) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("v1", "entities", "export"), nil,
	)
	if err != nil {
		return err
	}
	req.URL.RawQuery = url.Values{"format": {format}}.Encode()

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}

	stream, err := unmarshalStreamResponse(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot export entities as %v", format),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
	if err != nil {
		resp.Body.Close()
		return err
	}
	defer stream.Close()

	return handler(stream)
}
