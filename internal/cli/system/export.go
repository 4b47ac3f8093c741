package system

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/export"
)

type ExportCmd struct {
	Output string `help:"Output file (default: mayfly-backup-YYYY-MM-DD.json in the current directory)." short:"o"`
	Stdout bool   `help:"Write to stdout instead of a file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	doc, err := export.Build(ctx.Store, now)
	if err != nil {
		return err
	}
	if c.Stdout {
		return export.Write(ctx.Out, doc)
	}

	path := c.Output
	if path == "" {
		path = export.DefaultFileName(now)
	}
	if err := export.WriteFile(path, doc); err != nil {
		return err
	}

	ctx.Printf("Exported %d habit%s and %d todo%s to %s\n",
		len(doc.Habits), cli.Plural(len(doc.Habits)), len(doc.Todos), cli.Plural(len(doc.Todos)), filepath.Clean(path))
	return nil
}

func jsonEncode(ctx *cli.Context, v any) error {
	enc := json.NewEncoder(ctx.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
