package attachments

import (
	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

type Attachment struct {
	Id          string          `json:"id"`
	EntityId    string          `json:"entityId"`
	Filename    string          `json:"filename"`
	ContentType string          `json:"contentType"`
	Size        int64           `json:"size"`
	Analyzed    bool            `json:"analyzed"`
	UploadedAt  rfctime.RFC3339 `json:"uploadedAt"`
}

func (a Attachment) Equal(o Attachment) bool {
	return a.Id == o.Id &&
		a.EntityId == o.EntityId &&
		a.Filename == o.Filename &&
		a.ContentType == o.ContentType &&
		a.Size == o.Size &&
		a.Analyzed == o.Analyzed &&
		a.UploadedAt.Equal(o.UploadedAt)
}
