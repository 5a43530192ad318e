package facets

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/caeli-works/caeli-api-types/internal/utils/cmp"
	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

// Provenance tells where a facet value came from.
type Provenance string

const (
	FromDocument Provenance = "document"
	FromManual   Provenance = "manual"
	FromAI       Provenance = "ai"
	FromImport   Provenance = "import"
)

func (p *Provenance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Provenance(s) {
	case FromDocument, FromManual, FromAI, FromImport:
		*p = Provenance(s)
		return nil
	}
	return fmt.Errorf("unknown facet provenance: %s", s)
}

// FacetType is the definition of a typed attribute.
//
// Schema, when not empty, is a JSON schema constraining values of this type.
// The client passes it through without interpreting it.
type FacetType struct {
	Id        string          `json:"id"`
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	ValueType string          `json:"valueType"`
	Schema    json.RawMessage `json:"schema,omitempty"`
}

func (t FacetType) Equal(o FacetType) bool {
	return t.Id == o.Id &&
		t.Key == o.Key &&
		t.Name == o.Name &&
		t.ValueType == o.ValueType &&
		bytes.Equal(t.Schema, o.Schema)
}

// Value is an instance of a FacetType on an Entity.
type Value struct {
	Id             string          `json:"id"`
	FacetKey       string          `json:"facetKey"`
	Value          json.RawMessage `json:"value"`
	Provenance     Provenance      `json:"provenance"`
	Confidence     float64         `json:"confidence"`
	Verified       bool            `json:"verified"`
	SourceDocument string          `json:"sourceDocument,omitempty"`
	CreatedAt      rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt      rfctime.RFC3339 `json:"updatedAt"`
}

func (v Value) Equal(o Value) bool {
	return v.Id == o.Id &&
		v.FacetKey == o.FacetKey &&
		bytes.Equal(v.Value, o.Value) &&
		v.Provenance == o.Provenance &&
		v.Confidence == o.Confidence &&
		v.Verified == o.Verified &&
		v.SourceDocument == o.SourceDocument &&
		v.CreatedAt.Equal(o.CreatedAt) &&
		v.UpdatedAt.Equal(o.UpdatedAt)
}

// Setting is a facet value to be written onto an entity.
type Setting struct {
	FacetKey string          `json:"facetKey"`
	Value    json.RawMessage `json:"value"`
}

func (s Setting) Equal(o Setting) bool {
	return s.FacetKey == o.FacetKey && bytes.Equal(s.Value, o.Value)
}

// Change is a batched facet mutation on an entity.
//
// Set upserts values, Remove deletes values by facet value id.
type Change struct {
	Set    []Setting `json:"set,omitempty"`
	Remove []string  `json:"remove,omitempty"`
}

func (c Change) Equal(o Change) bool {
	remove := func(a, b string) bool { return a == b }
	return cmp.SliceEqualUnordered(c.Set, o.Set) &&
		sliceEqWith(c.Remove, o.Remove, remove)
}

// VerifyRequest marks a facet value as human-verified (or not).
type VerifyRequest struct {
	Verified bool `json:"verified"`
}

func sliceEqWith[T any](a, b []T, eq func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}
