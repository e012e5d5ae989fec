package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// tuiCommand launches the read-only viewer. It never rewrites the store.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	path := cfg.StoreFile
	styles := listStyles(os.Stdout, cfg.Color)
	logger.Debug("starting viewer", "path", path)
	return ui.RunTUI(ctx, path, func() (*todo.Data, error) {
		return loadStore(path)
	}, ui.WithStyles(styles))
}
