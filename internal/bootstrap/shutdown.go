package bootstrap

import (
	"context"
	"log/slog"

	"github.com/lootledger/engine/internal/server"
	"github.com/lootledger/engine/internal/store"
	"github.com/lootledger/engine/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server   *server.Server
	Autosave *worker.Autosave
	Store    store.Store
}

// GracefulShutdown shuts the application components down in dependency
// order:
// 1. HTTP server (stop accepting new requests)
// 2. Autosave worker (stops the ticker and writes a final snapshot)
// 3. Store (close connections after the final save landed)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Autosave != nil {
		if err := components.Autosave.Shutdown(ctx); err != nil {
			slog.Error("Autosave shutdown failed", "error", err)
		}
	}

	if components.Store != nil {
		if err := components.Store.Close(); err != nil {
			slog.Error("Store close failed", "error", err)
		}
	}

	slog.Info(LogMsgShutdownComplete)
}
