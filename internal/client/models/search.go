package models

import "encoding/json"

// FacetCounts maps a facet value to its hit count.
type FacetCounts map[string]int

// SearchResponse is the raw multi-query search response: one result per
// request, in request order.
type SearchResponse struct {
	Results []RawResult `json:"results"`
}

// RawResult is one result of a multi-query response with undecoded hits.
type RawResult struct {
	Hits        []json.RawMessage      `json:"hits"`
	NbHits      int                    `json:"nbHits"`
	Page        int                    `json:"page"`
	NbPages     int                    `json:"nbPages"`
	HitsPerPage int                    `json:"hitsPerPage"`
	Facets      map[string]FacetCounts `json:"facets,omitempty"`
}

// SearchResult is the decoded primary result of an asset search, with
// facet counts merged from the facet sub-requests.
type SearchResult struct {
	Assets      []*Asset
	NbHits      int
	Page        int
	NbPages     int
	HitsPerPage int
	Facets      map[string]FacetCounts
}

// CollectionResult is the decoded result of a collection search.
type CollectionResult struct {
	Collections []*Collection
	NbHits      int
	Page        int
	NbPages     int
}
