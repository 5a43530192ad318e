package relations

import (
	"github.com/caeli-works/caeli-api-types/entities"
	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

type RelationType struct {
	Id       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Directed bool   `json:"directed"`
}

func (t RelationType) Equal(o RelationType) bool {
	return t.Id == o.Id &&
		t.Key == o.Key &&
		t.Name == o.Name &&
		t.Directed == o.Directed
}

// Relation is a typed edge between two entities, directed from From to To.
type Relation struct {
	Id         string            `json:"id"`
	Type       string            `json:"type"`
	From       entities.Summary  `json:"from"`
	To         entities.Summary  `json:"to"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedAt  rfctime.RFC3339   `json:"createdAt"`
}

func (r Relation) Equal(o Relation) bool {
	return r.Id == o.Id &&
		r.Type == o.Type &&
		r.From.Equal(o.From) &&
		r.To.Equal(o.To) &&
		mapEq(r.Attributes, o.Attributes) &&
		r.CreatedAt.Equal(o.CreatedAt)
}

// Spec is the payload to create a relation.
type Spec struct {
	Type       string            `json:"type"`
	FromId     string            `json:"fromId"`
	ToId       string            `json:"toId"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func (s Spec) Equal(o Spec) bool {
	return s.Type == o.Type &&
		s.FromId == o.FromId &&
		s.ToId == o.ToId &&
		mapEq(s.Attributes, o.Attributes)
}

func mapEq(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		if vb, ok := b[k]; !ok || va != vb {
			return false
		}
	}
	return true
}
