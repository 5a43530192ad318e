package entities

import (
	"github.com/caeli-works/caeli-api-types/internal/utils/cmp"
	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

// EntityType describes a kind of Entity (organization, location, ...).
type EntityType struct {
	Id   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

func (t EntityType) Equal(o EntityType) bool {
	return t.Id == o.Id && t.Key == o.Key && t.Name == o.Name
}

type Summary struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	ExternalId string `json:"externalId,omitempty"`
	Type       string `json:"type"`
}

func (s Summary) Equal(o Summary) bool {
	return s.Id == o.Id &&
		s.Name == o.Name &&
		s.ExternalId == o.ExternalId &&
		s.Type == o.Type
}

type Detail struct {
	Summary
	ParentId      string            `json:"parentId,omitempty"`
	Children      []Summary         `json:"children"`
	Attributes    map[string]string `json:"attributes"`
	FacetCount    int               `json:"facetCount"`
	RelationCount int               `json:"relationCount"`
	CreatedAt     rfctime.RFC3339   `json:"createdAt"`
	UpdatedAt     rfctime.RFC3339   `json:"updatedAt"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Summary.Equal(o.Summary) &&
		d.ParentId == o.ParentId &&
		d.FacetCount == o.FacetCount &&
		d.RelationCount == o.RelationCount &&
		cmp.SliceEqualUnordered(d.Children, o.Children) &&
		mapEq(d.Attributes, o.Attributes) &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}

// Spec is the payload to create or update an Entity.
type Spec struct {
	Name       string            `json:"name"`
	ExternalId string            `json:"externalId,omitempty"`
	Type       string            `json:"type"`
	ParentId   string            `json:"parentId,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func (s Spec) Equal(o Spec) bool {
	return s.Name == o.Name &&
		s.ExternalId == o.ExternalId &&
		s.Type == o.Type &&
		s.ParentId == o.ParentId &&
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
