package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/assetbrowser/internal/clock"
)

const (
	// DefaultHitsPerPage is used when an asset search does not set one.
	DefaultHitsPerPage = 24

	maxValuesPerFacet = 1000
	highlightPreTag   = "__ais-highlight__"
	highlightPostTag  = "__/ais-highlight__"
)

// Query is the body of POST /adobe/assets/search.
type Query struct {
	Requests []Request `json:"requests"`
}

// Request is one request of a multi-query.
type Request struct {
	IndexName string `json:"indexName"`
	Params    Params `json:"params"`

	// Kind and Facet describe what a request is for; they are not sent.
	Kind  Kind   `json:"-"`
	Facet string `json:"-"`
}

// Kind tells the primary request apart from facet sub-requests.
type Kind int

const (
	KindPrimary Kind = iota
	KindFacet
	KindNumericFacet
)

// Params are the search parameters of one request.
type Params struct {
	Query             string     `json:"query"`
	Facets            []string   `json:"facets,omitempty"`
	FacetFilters      [][]string `json:"facetFilters"`
	NumericFilters    []string   `json:"numericFilters,omitempty"`
	Filters           string     `json:"filters,omitempty"`
	HitsPerPage       int        `json:"hitsPerPage"`
	Page              int        `json:"page"`
	MaxValuesPerFacet int        `json:"maxValuesPerFacet,omitempty"`
	HighlightPreTag   string     `json:"highlightPreTag,omitempty"`
	HighlightPostTag  string     `json:"highlightPostTag,omitempty"`
}

// AssetSearch is the UI filter state of an asset search.
type AssetSearch struct {
	Query string
	// CollectionID scopes the search to one collection. Its fourth
	// colon-delimited segment is the value matched against collectionIds.
	CollectionID string
	// Facets lists the facet fields to count.
	Facets []string
	// FacetFilters groups are OR'd internally and AND'd together.
	FacetFilters [][]string
	// NumericFilters are range expressions such as
	// "repo-createDate >= 1700000000".
	NumericFilters []string
	// Filters are free-form boolean filter strings.
	Filters     []string
	HitsPerPage int
	Page        int
}

// CollectionSearch is the state of a collection search. HitsPerPage is
// required.
type CollectionSearch struct {
	Query       string
	Filters     []string
	HitsPerPage int
	Page        int
}

// Compiler builds search queries for one bucket's indexes.
type Compiler struct {
	indexName        string
	collectionsIndex string
	clock            clock.Clock
}

// NewCompiler returns a compiler for the given asset and collection
// indexes. A nil clock means the real clock.
func NewCompiler(indexName, collectionsIndex string, clk clock.Clock) *Compiler {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Compiler{indexName: indexName, collectionsIndex: collectionsIndex, clock: clk}
}

// Assets compiles an asset search into the primary request followed by
// its facet sub-requests.
func (c *Compiler) Assets(s AssetSearch) Query {
	hitsPerPage := s.HitsPerPage
	if hitsPerPage <= 0 {
		hitsPerPage = DefaultHitsPerPage
	}

	groups := cloneGroups(s.FacetFilters)
	if len(groups) == 0 {
		groups = [][]string{{}}
	}
	if s.CollectionID != "" {
		groups = append(groups, []string{"collectionIds:" + collectionKey(s.CollectionID)})
	}

	filters := CombineFilters(append([]string{NonExpiredFilter(c.clock.Now())}, s.Filters...)...)

	requests := []Request{{
		IndexName: c.indexName,
		Kind:      KindPrimary,
		Params: Params{
			Query:             s.Query,
			Facets:            s.Facets,
			FacetFilters:      groups,
			NumericFilters:    s.NumericFilters,
			Filters:           filters,
			HitsPerPage:       hitsPerPage,
			Page:              s.Page,
			MaxValuesPerFacet: maxValuesPerFacet,
			HighlightPreTag:   highlightPreTag,
			HighlightPostTag:  highlightPostTag,
		},
	}}

	for i, group := range groups {
		if len(group) == 0 {
			continue
		}

		facet := FacetName(group[0])
		requests = append(requests, Request{
			IndexName: c.indexName,
			Kind:      KindFacet,
			Facet:     facet,
			Params: Params{
				Query:        s.Query,
				Facets:       []string{facet},
				FacetFilters: excludeGroup(groups, i),
				Filters:      filters,
				HitsPerPage:  0,
				Page:         0,
			},
		})

		if len(s.NumericFilters) > 0 {
			numeric := NumericFacetName(s.NumericFilters[0])
			requests = append(requests, Request{
				IndexName: c.indexName,
				Kind:      KindNumericFacet,
				Facet:     numeric,
				Params: Params{
					Query:        "",
					Facets:       []string{numeric},
					FacetFilters: cloneGroups(groups),
					Filters:      filters,
					HitsPerPage:  0,
					Page:         0,
				},
			})
		}
	}

	return Query{Requests: requests}
}

// Collections compiles a collection search. It fails with
// ErrMissingRequiredParameter when HitsPerPage is not set.
func (c *Compiler) Collections(s CollectionSearch) (Query, error) {
	if s.HitsPerPage <= 0 {
		return Query{}, fmt.Errorf("%w: hitsPerPage", ErrMissingRequiredParameter)
	}

	filters := CombineFilters(append([]string{NonExpiredFilter(c.clock.Now())}, s.Filters...)...)

	return Query{Requests: []Request{{
		IndexName: c.collectionsIndex,
		Kind:      KindPrimary,
		Params: Params{
			Query:            s.Query,
			FacetFilters:     [][]string{},
			Filters:          filters,
			HitsPerPage:      s.HitsPerPage,
			Page:             s.Page,
			HighlightPreTag:  highlightPreTag,
			HighlightPostTag: highlightPostTag,
		},
	}}}, nil
}

// NonExpiredFilter excludes assets whose expiration date has passed at
// now. Assets without an expiration date always match.
func NonExpiredFilter(now time.Time) string {
	return fmt.Sprintf("is_pur-expirationDate = 0 OR pur-expirationDate > %d", now.Unix())
}

// CombineFilters drops blank filters, parenthesises the rest and joins
// them with AND.
func CombineFilters(filters ...string) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts = append(parts, "("+f+")")
	}
	return strings.Join(parts, " AND ")
}

// FacetName returns the field of a "field:value" facet filter.
func FacetName(filter string) string {
	name, _, _ := strings.Cut(filter, ":")
	return strings.TrimSpace(name)
}

// NumericFacetName returns the field of a numeric filter, the text
// before its first comparison operator.
func NumericFacetName(filter string) string {
	if i := strings.IndexAny(filter, "<>="); i >= 0 {
		filter = filter[:i]
	}
	return strings.TrimSpace(filter)
}

// collectionKey extracts the fourth colon-delimited segment of a
// collection id, falling back to the whole id when it has fewer.
func collectionKey(id string) string {
	segments := strings.Split(id, ":")
	if len(segments) < 4 {
		return id
	}
	return segments[3]
}

func excludeGroup(groups [][]string, skip int) [][]string {
	out := make([][]string, 0, len(groups)-1)
	for i, g := range groups {
		if i == skip {
			continue
		}
		out = append(out, append([]string{}, g...))
	}
	return out
}

func cloneGroups(groups [][]string) [][]string {
	if groups == nil {
		return nil
	}
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = append([]string{}, g...)
	}
	return out
}
