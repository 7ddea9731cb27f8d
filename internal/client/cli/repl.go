package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const helpText = `Available commands:
  search <text> [+facet:value] [#numeric>=n] [@collectionId]
  collections <text>
  next
  meta <assetId>
  renditions <assetId>
  presets [assetId]
  download <assetId> [rendition] [preset]
  archive <assetId>...
  cart add <assetId>... | cart rm <assetId>... | cart list | cart download
  exit`

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Search(ctx context.Context, args []string) error
	Collections(ctx context.Context, args []string) error
	Next(ctx context.Context) error
	Meta(ctx context.Context, args []string) error
	Renditions(ctx context.Context, args []string) error
	Presets(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Archive(ctx context.Context, args []string) error
	Cart(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens.
// Handler errors are printed and the loop carries on. The loop exits on
// scanner EOF, when ctx is done, or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("dam %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "search", "s":
			err = a.Search(ctx, args)
		case "collections":
			err = a.Collections(ctx, args)
		case "next", "n":
			err = a.Next(ctx)
		case "meta":
			err = a.Meta(ctx, args)
		case "renditions":
			err = a.Renditions(ctx, args)
		case "presets":
			err = a.Presets(ctx, args)
		case "download", "dl":
			err = a.Download(ctx, args)
		case "archive":
			err = a.Archive(ctx, args)
		case "cart":
			err = a.Cart(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
