package ai

// EnrichmentRequest asks the server to fill facets of an entity
// with AI-extracted values.
type EnrichmentRequest struct {
	EntityId string `json:"entityId"`

	// FacetKeys limits enrichment to the named facets.
	// Empty means all facets known for the entity type.
	FacetKeys []string `json:"facetKeys,omitempty"`
}

// AnalysisRequest asks the server to analyse an uploaded document
// and propose facet values from its content.
type AnalysisRequest struct {
	AttachmentId string `json:"attachmentId"`
}
