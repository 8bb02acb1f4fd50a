package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/voltcraft/troubleshoot/internal/config"
	"github.com/voltcraft/troubleshoot/internal/validator"
	loamAdapter "github.com/voltcraft/troubleshoot/pkg/adapters/loam"
	"github.com/voltcraft/troubleshoot/pkg/catalog"
	"github.com/voltcraft/troubleshoot/pkg/ports"
)

// NewSource resolves where trees are read from.
func NewSource(cfg config.Config) (ports.TreeSource, error) {
	switch {
	case cfg.Catalog == "":
		return catalog.Builtin(), nil
	case cfg.Loam:
		return loamAdapter.Open(cfg.Catalog)
	default:
		return catalog.DirSource(cfg.Catalog), nil
	}
}

// Validate checks every tree of the configured catalog and writes a report to w.
// It returns an error when any tree is unusable.
func Validate(ctx context.Context, cfg config.Config, w io.Writer) error {
	source, err := NewSource(cfg)
	if err != nil {
		return err
	}
	trees, err := source.LoadTrees(ctx)
	if err != nil {
		return err
	}

	if len(trees) == 0 {
		return errors.New("no trees found")
	}

	failed := 0
	for _, tree := range trees {
		report := validator.ValidateTree(tree)
		mark := "ok"
		if !report.OK() {
			mark = "FAILED"
			failed++
		}
		fmt.Fprintf(w, "%-12s %d nodes  %s\n", tree.Category, len(tree.Nodes), mark)
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  error:   %s\n", e)
		}
		for _, warn := range report.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d trees are invalid", failed, len(trees))
	}
	// Cross-tree checks (duplicate categories).
	if _, err := catalog.New(trees); err != nil {
		return err
	}
	return nil
}
