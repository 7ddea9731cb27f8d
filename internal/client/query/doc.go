// Package query compiles UI filter state into a multi-request search
// payload for the asset search index.
//
// An asset search compiles into one primary request followed by facet
// sub-requests. The primary request carries the full filter state and
// returns hits. Each sub-request returns no hits, only facet counts: for
// facet-filter group i it repeats the search with every group except i,
// so the counts of a facet reflect what it would show if its own
// selection were cleared. When numeric filters are present, one more
// sub-request per group asks for the counts of the numeric facet with
// the full set of groups and an empty query.
//
// Every request, primary or not, carries the non-expired-assets clause
// ANDed with the caller's filters.
package query
