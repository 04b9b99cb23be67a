package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/noteeasy/internal/client/api"
	"github.com/dmitrijs2005/noteeasy/internal/client/cli"
	"github.com/dmitrijs2005/noteeasy/internal/client/config"
	"github.com/dmitrijs2005/noteeasy/internal/client/media"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/idmap"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/notes"
	"github.com/dmitrijs2005/noteeasy/internal/client/repositories/queue"
	"github.com/dmitrijs2005/noteeasy/internal/client/services"
	"github.com/dmitrijs2005/noteeasy/internal/client/storage"
	"github.com/dmitrijs2005/noteeasy/internal/logging"

	"gopkg.in/natefinch/lumberjack.v2"
	_ "modernc.org/sqlite"
)

func newLogger(cfg *config.Config) logging.Logger {
	var w io.Writer = os.Stderr
	if cfg.LogFile != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(w, nil)))
}

func main() {

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()
	logger := newLogger(cfg)

	db, kv, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	tokens := api.NewKVTokenStore(kv)
	client := api.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout, tokens, logger)

	mediaDir := media.NewDir(cfg.MediaDir, logger)
	if err := mediaDir.Ensure(); err != nil {
		log.Fatalf("error creating media directory: %v", err)
	}

	noteCache := notes.NewKVRepository(kv)
	opQueue := queue.NewKVRepository(kv)
	ids := idmap.NewKVRepository(kv)

	ns := services.NewNoteService(client, noteCache, opQueue, ids, mediaDir, logger)
	ss := services.NewSyncService(client, opQueue, ids, noteCache, kv, logger)

	app := cli.NewApp(cfg, ns, ss, tokens, logger)
	app.Run(ctx)

}
