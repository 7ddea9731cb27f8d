package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dustin/go-humanize"
)

// Archive bundles the original renditions of the given assets into one
// server side archive and downloads its files.
func (a *App) Archive(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: archive <assetId>...", errNeedsArgs)
	}

	items := make([]models.ArchiveItem, 0, len(args))
	for _, id := range args {
		items = append(items, models.ArchiveItem{AssetID: id, IncludeRenditions: []string{models.OriginalRendition}})
	}

	res, err := a.archiver.Run(ctx, items)
	if err != nil {
		return err
	}
	a.printf("archive %s: %s after %d polls, %d files (%d failed)\n",
		res.ArchiveID, res.State, res.Polls, len(res.Files), res.FailedFiles)
	if !res.OK() {
		return fmt.Errorf("archive %s", res.State)
	}
	return nil
}

func (a *App) Cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: cart add|rm|list|download", errNeedsArgs)
	}

	switch sub, rest := args[0], args[1:]; sub {
	case "add":
		return a.cartAdd(ctx, rest)
	case "rm", "remove":
		if len(rest) == 0 {
			return fmt.Errorf("%w: cart rm <assetId>...", errNeedsArgs)
		}
		return a.cart.Remove(ctx, rest...)
	case "list", "ls":
		return a.cartList(ctx)
	case "download":
		return a.cartDownload(ctx)
	default:
		return fmt.Errorf("unknown cart command %q", sub)
	}
}

func (a *App) cartAdd(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: cart add <assetId>...", errNeedsArgs)
	}

	assets := make([]*models.Asset, 0, len(ids))
	for _, id := range ids {
		assets = append(assets, a.asset(id))
	}

	failed := 0
	for _, r := range a.cart.Add(ctx, assets) {
		if r.Err != nil {
			failed++
			a.printf("  %s: %v\n", r.AssetID, r.Err)
			continue
		}
		a.printf("  %s: added\n", r.AssetID)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d assets not added", failed, len(ids))
	}
	return nil
}

func (a *App) cartList(ctx context.Context) error {
	items, err := a.cart.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.printf("cart is empty\n")
		return nil
	}
	for _, p := range items {
		a.printf("  %s  %s  %s  %s  added %s\n",
			p.AssetID, p.Name, p.ContentType, humanize.Bytes(uint64(p.Size)), humanize.Time(p.CreatedAt))
	}
	return nil
}

func (a *App) cartDownload(ctx context.Context) error {
	items, err := a.cart.List(ctx)
	if err != nil {
		return err
	}

	assets := make([]*models.Asset, 0, len(items))
	for _, p := range items {
		as := a.asset(p.AssetID)
		if as.Name == "" {
			as.Name = p.Name
		}
		assets = append(assets, as)
	}

	if err := a.cart.Download(ctx, assets); err != nil {
		return err
	}
	a.printf("downloaded %d assets\n", len(assets))
	return nil
}
