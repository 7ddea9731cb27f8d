package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/query"
	"github.com/dustin/go-humanize"
)

var (
	errNoSearch  = errors.New("no previous search")
	errLastPage  = errors.New("already on the last page")
	errNeedsArgs = errors.New("missing arguments")
)

// parseAssetSearch turns search arguments into an asset search.
//
//	+facet:value   facet filter; values of the same facet are OR'd
//	#expr          numeric filter, e.g. #repo-size>=1000
//	@id            restrict to a collection
//
// Everything else is query text.
func parseAssetSearch(args []string, hitsPerPage int) query.AssetSearch {
	s := query.AssetSearch{HitsPerPage: hitsPerPage}

	var text []string
	groupOf := map[string]int{}
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "+") && strings.Contains(arg, ":"):
			filter := arg[1:]
			facet := query.FacetName(filter)
			i, ok := groupOf[facet]
			if !ok {
				i = len(s.FacetFilters)
				groupOf[facet] = i
				s.FacetFilters = append(s.FacetFilters, nil)
				s.Facets = append(s.Facets, facet)
			}
			s.FacetFilters[i] = append(s.FacetFilters[i], filter)
		case strings.HasPrefix(arg, "#") && len(arg) > 1:
			s.NumericFilters = append(s.NumericFilters, arg[1:])
			if facet := query.NumericFacetName(arg[1:]); !slices.Contains(s.Facets, facet) {
				s.Facets = append(s.Facets, facet)
			}
		case strings.HasPrefix(arg, "@") && len(arg) > 1:
			s.CollectionID = arg[1:]
		default:
			text = append(text, arg)
		}
	}
	s.Query = strings.Join(text, " ")
	return s
}

func (a *App) Search(ctx context.Context, args []string) error {
	return a.runAssetSearch(ctx, parseAssetSearch(args, a.hitsPerPage))
}

func (a *App) runAssetSearch(ctx context.Context, s query.AssetSearch) error {
	res, err := a.assets.Search(ctx, s)
	if err != nil {
		return err
	}
	a.last = &lastSearch{kind: searchAssets, assets: s, nbPages: res.NbPages}

	a.printf("%d hits, page %d/%d\n", res.NbHits, res.Page+1, res.NbPages)
	for _, as := range res.Assets {
		a.seen[as.AssetID] = as
		a.printf("  %s  %s  %s  %s\n", as.AssetID, as.Name, as.Format, humanize.Bytes(uint64(max(as.Size, 0))))
	}
	a.printFacets(res.Facets)
	return nil
}

func (a *App) printFacets(facets map[string]models.FacetCounts) {
	for _, name := range slices.Sorted(maps.Keys(facets)) {
		counts := facets[name]
		values := slices.Sorted(maps.Keys(counts))
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, fmt.Sprintf("%s (%d)", v, counts[v]))
		}
		a.printf("  [%s] %s\n", name, strings.Join(parts, ", "))
	}
}

func (a *App) Collections(ctx context.Context, args []string) error {
	return a.runCollectionSearch(ctx, query.CollectionSearch{
		Query:       strings.Join(args, " "),
		HitsPerPage: a.hitsPerPage,
	})
}

func (a *App) runCollectionSearch(ctx context.Context, s query.CollectionSearch) error {
	res, err := a.assets.SearchCollections(ctx, s)
	if err != nil {
		return err
	}
	a.last = &lastSearch{kind: searchCollections, collections: s, nbPages: res.NbPages}

	a.printf("%d collections, page %d/%d\n", res.NbHits, res.Page+1, res.NbPages)
	for _, c := range res.Collections {
		a.printf("  %s  %s (%d assets)\n", c.CollectionID, c.Title, len(c.AssetIDs))
	}
	return nil
}

// Next repeats the previous search one page further.
func (a *App) Next(ctx context.Context) error {
	if a.last == nil {
		return errNoSearch
	}

	switch a.last.kind {
	case searchCollections:
		s := a.last.collections
		if s.Page+1 >= a.last.nbPages {
			return errLastPage
		}
		s.Page++
		return a.runCollectionSearch(ctx, s)
	default:
		s := a.last.assets
		if s.Page+1 >= a.last.nbPages {
			return errLastPage
		}
		s.Page++
		return a.runAssetSearch(ctx, s)
	}
}
