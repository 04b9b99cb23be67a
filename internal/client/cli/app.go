// Package cli implements the interactive REPL for the NoteEasy client.
package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/noteeasy/internal/client/api"
	"github.com/dmitrijs2005/noteeasy/internal/client/config"
	"github.com/dmitrijs2005/noteeasy/internal/client/services"
	"github.com/dmitrijs2005/noteeasy/internal/logging"
)

type App struct {
	config      *config.Config
	noteService services.NoteService
	syncService services.SyncService
	tokens      api.TokenStore
	reader      *bufio.Reader
	log         logging.Logger
}

func NewApp(cfg *config.Config, ns services.NoteService, ss services.SyncService, tokens api.TokenStore, log logging.Logger) *App {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &App{
		config:      cfg,
		noteService: ns,
		syncService: ss,
		tokens:      tokens,
		reader:      bufio.NewReader(os.Stdin),
		log:         log,
	}
}

func (a *App) Run(ctx context.Context) {
	// Bootstrap the cache; offline startup falls back to cached state.
	if _, err := a.syncService.InitialSync(ctx); err != nil {
		a.log.Warn(ctx, "initial sync failed", "err", err)
	}

	go a.StartAutoSync(ctx, a.config.SyncInterval)

	a.Root(ctx)
}

// StartAutoSync triggers a sync pass every interval until ctx is done.
// Triggers that land while a pass is in flight are dropped.
func (a *App) StartAutoSync(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			res, err := a.syncService.Sync(ctx)
			switch {
			case err != nil:
				a.log.Warn(ctx, "background sync failed", "err", err)
			case res.AlreadySyncing:
				a.log.Debug(ctx, "background sync skipped: already syncing")
			default:
				a.log.Debug(ctx, "background sync finished", "noop", res.NoOp)
			}

		case <-ctx.Done():
			return
		}
	}
}
