package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/caeli-works/caeli-api-types/attachments"
)

func (c *client) UploadAttachment(
	ctx context.Context, entityId string, filename string, r io.Reader,
) (attachments.Attachment, error) {

	// buffered rather than streamed, so the request can be replayed
	// after a token refresh.
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return attachments.Attachment{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return attachments.Attachment{}, err
	}
	if err := mw.Close(); err != nil {
		return attachments.Attachment{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("v1", "entities", entityId, "attachments"),
		bytes.NewReader(buf.Bytes()),
	)
	if err != nil {
		return attachments.Attachment{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return attachments.Attachment{}, err
	}
	defer resp.Body.Close()

	var att attachments.Attachment
	if err := unmarshalJsonResponse(
		resp, &att,
		MessageFor{
			Status4xx: fmt.Sprintf("upload for entity:%v is rejected by server", entityId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return attachments.Attachment{}, err
	}
	return att, nil
}

func (c *client) ListAttachments(ctx context.Context, entityId string) ([]attachments.Attachment, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "entities", entityId, "attachments"), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]attachments.Attachment, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("entity:%v is not found", entityId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found, nil
}
