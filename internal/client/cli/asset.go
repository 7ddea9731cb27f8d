package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dustin/go-humanize"
)

func (a *App) Meta(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: meta <assetId>", errNeedsArgs)
	}

	md, err := a.assets.Metadata(ctx, args[0])
	if err != nil {
		return err
	}

	a.printf("asset %s\n", md.AssetID)
	printMap := func(title string, m map[string]any) {
		if len(m) == 0 {
			return
		}
		a.printf("%s:\n", title)
		for _, k := range slices.Sorted(maps.Keys(m)) {
			a.printf("  %s: %v\n", k, m[k])
		}
	}
	printMap("repository", md.RepositoryMetadata)
	printMap("asset", md.AssetMetadata)
	return nil
}

func (a *App) Renditions(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: renditions <assetId>", errNeedsArgs)
	}

	rs, err := a.assets.Renditions(ctx, a.asset(args[0]))
	if err != nil {
		return err
	}
	a.printRenditions(rs)
	return nil
}

// Presets lists the repository's image presets, or those of one asset.
func (a *App) Presets(ctx context.Context, args []string) error {
	var (
		rs  []models.Rendition
		err error
	)
	if len(args) > 0 {
		rs, err = a.assets.ImagePresets(ctx, a.asset(args[0]))
	} else {
		rs, err = a.assets.Presets(ctx)
	}
	if err != nil {
		return err
	}
	a.printRenditions(rs)
	return nil
}

func (a *App) printRenditions(rs []models.Rendition) {
	if len(rs) == 0 {
		a.printf("none\n")
		return
	}
	for _, r := range rs {
		line := "  " + r.Name
		if r.Format != "" {
			line += "  " + r.Format
		}
		if r.Size > 0 {
			line += "  " + humanize.Bytes(uint64(r.Size))
		}
		if d := r.Dimensions; d != nil {
			line += fmt.Sprintf("  %dx%d", d.Width, d.Height)
		}
		a.printf("%s\n", line)
	}
}

// Download fetches one rendition of an asset. The optional third argument
// "preset" selects an image preset instead of a stored rendition.
func (a *App) Download(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 3 {
		return fmt.Errorf("%w: download <assetId> [rendition] [preset]", errNeedsArgs)
	}

	as := a.asset(args[0])
	r := models.Original()
	isPreset := len(args) == 3 && args[2] == "preset"

	if len(args) > 1 {
		r = a.lookupRendition(ctx, as, args[1], isPreset)
	}

	blob, err := a.assets.Download(ctx, as, r, isPreset)
	if err != nil {
		return err
	}
	a.printf("downloaded %s %s (%s)\n", as.AssetID, r.Name, humanize.Bytes(uint64(len(blob.Data))))
	return nil
}

// lookupRendition finds a rendition by name among the asset's listed ones,
// so its format is known. Unknown names are used as given.
func (a *App) lookupRendition(ctx context.Context, as *models.Asset, name string, isPreset bool) models.Rendition {
	list := a.assets.Renditions
	if isPreset {
		list = a.assets.ImagePresets
	}

	rs, err := list(ctx, as)
	if err != nil {
		a.log.Warn(ctx, "listing renditions failed", "asset_id", as.AssetID, "error", err)
		return models.Rendition{Name: name}
	}
	for _, r := range rs {
		if r.Name == name {
			return r
		}
	}
	return models.Rendition{Name: name}
}
