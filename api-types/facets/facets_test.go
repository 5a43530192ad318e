package facets_test

import (
	"encoding/json"
	"testing"

	"github.com/caeli-works/caeli-api-types/facets"
)

func TestProvenance_UnmarshalJSON(t *testing.T) {
	t.Run("known provenances are accepted", func(t *testing.T) {
		p := facets.Provenance("")
		if err := json.Unmarshal([]byte(`"ai"`), &p); err != nil {
			t.Fatal(err)
		}
		if p != facets.FromAI {
			t.Errorf("unexpected provenance: %s", p)
		}
	})

	t.Run("unknown provenances are rejected", func(t *testing.T) {
		p := facets.Provenance("")
		if err := json.Unmarshal([]byte(`"rumour"`), &p); err == nil {
			t.Error("unknown provenance should not unmarshal")
		}
	})
}

func TestChange_Equal(t *testing.T) {
	a := facets.Change{
		Set: []facets.Setting{
			{FacetKey: "industry", Value: json.RawMessage(`"logistics"`)},
			{FacetKey: "headcount", Value: json.RawMessage(`250`)},
		},
		Remove: []string{"facet-1"},
	}

	t.Run("order of Set does not matter", func(t *testing.T) {
		b := facets.Change{
			Set: []facets.Setting{
				{FacetKey: "headcount", Value: json.RawMessage(`250`)},
				{FacetKey: "industry", Value: json.RawMessage(`"logistics"`)},
			},
			Remove: []string{"facet-1"},
		}
		if !a.Equal(b) {
			t.Error("changes with the same content should be equal")
		}
	})

	t.Run("different values are not equal", func(t *testing.T) {
		b := facets.Change{
			Set: []facets.Setting{
				{FacetKey: "industry", Value: json.RawMessage(`"freight"`)},
				{FacetKey: "headcount", Value: json.RawMessage(`250`)},
			},
			Remove: []string{"facet-1"},
		}
		if a.Equal(b) {
			t.Error("changes with different values should not be equal")
		}
	})
}
