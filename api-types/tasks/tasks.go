package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

// Status of a backend task.
type Status string

const (
	Pending   Status = "PENDING"
	Running   Status = "RUNNING"
	Completed Status = "COMPLETED"
	Failed    Status = "FAILED"
	Cancelled Status = "CANCELLED"
)

// Terminal reports whether no further status transition can happen.
func (s Status) Terminal() bool {
	switch s {
	case Completed, Failed, Cancelled:
		return true
	}
	return false
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch Status(v) {
	case Pending, Running, Completed, Failed, Cancelled:
		*s = Status(v)
		return nil
	}
	return fmt.Errorf("unknown task status: %s", v)
}

// Kind of a task.
type Kind string

const (
	KindEnrichment Kind = "enrichment"
	KindAnalysis   Kind = "analysis"
	KindCrawl      Kind = "crawl"
)

type Progress struct {
	Done   int `json:"done"`
	Total  int `json:"total"`
	Failed int `json:"failed"`
}

func (p Progress) Equal(o Progress) bool {
	return p == o
}

// Task is an asynchronous backend job, observed by polling
// GET /v1/tasks/{id} or by subscribing to its event stream.
type Task struct {
	TaskId    string           `json:"taskId"`
	Kind      Kind             `json:"kind"`
	Status    Status           `json:"status"`
	Progress  Progress         `json:"progress"`
	Error     string           `json:"error,omitempty"`
	CreatedAt rfctime.RFC3339  `json:"createdAt"`
	UpdatedAt *rfctime.RFC3339 `json:"updatedAt,omitempty"`
}

func (t Task) Equal(o Task) bool {
	updatedEq := (t.UpdatedAt == nil && o.UpdatedAt == nil) ||
		(t.UpdatedAt != nil && o.UpdatedAt != nil && t.UpdatedAt.Equal(*o.UpdatedAt))

	return t.TaskId == o.TaskId &&
		t.Kind == o.Kind &&
		t.Status == o.Status &&
		t.Progress.Equal(o.Progress) &&
		t.Error == o.Error &&
		t.CreatedAt.Equal(o.CreatedAt) &&
		updatedEq
}

// Event is one message on a task's event stream.
type Event struct {
	Task Task `json:"task"`
}
