package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/query"
	"github.com/dmitrijs2005/assetbrowser/internal/client/services"
	"github.com/dmitrijs2005/assetbrowser/internal/logging"
)

type searchKind int

const (
	searchAssets searchKind = iota + 1
	searchCollections
)

// lastSearch remembers the previous search so "next" can page through it.
type lastSearch struct {
	kind        searchKind
	assets      query.AssetSearch
	collections query.CollectionSearch
	nbPages     int
}

// App holds the services behind the REPL commands and the state carried
// between commands.
type App struct {
	assets      services.AssetService
	cart        services.CartService
	archiver    services.Archiver
	hitsPerPage int
	log         logging.Logger
	out         io.Writer

	last *lastSearch
	// seen keeps every asset returned by a search, so later commands reuse
	// its name, format and cached rendition lists.
	seen map[string]*models.Asset
}

// NewApp constructs the CLI application. Output goes to stdout.
func NewApp(assets services.AssetService, cart services.CartService, archiver services.Archiver, hitsPerPage int, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		assets:      assets,
		cart:        cart,
		archiver:    archiver,
		hitsPerPage: hitsPerPage,
		log:         log,
		out:         os.Stdout,
		seen:        make(map[string]*models.Asset),
	}
}

// Run starts the REPL on stdin and blocks until the user exits or ctx is
// done.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the asset browser (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) getStatus() string {
	if a.last == nil {
		return ""
	}
	switch a.last.kind {
	case searchAssets:
		return fmt.Sprintf("(%q p%d/%d)", a.last.assets.Query, a.last.assets.Page+1, a.last.nbPages)
	case searchCollections:
		return fmt.Sprintf("(collections %q p%d/%d)", a.last.collections.Query, a.last.collections.Page+1, a.last.nbPages)
	}
	return ""
}

// asset returns the asset seen in an earlier search, or a bare one
// carrying only the id.
func (a *App) asset(id string) *models.Asset {
	if as, ok := a.seen[id]; ok {
		return as
	}
	as := &models.Asset{AssetID: id}
	a.seen[id] = as
	return as
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
