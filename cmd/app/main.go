// Command app runs the loot ledger engine: it loads or seeds the world,
// starts the autosave worker, and serves the HTTP API.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lootledger/engine/internal/bootstrap"
	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/config"
	"github.com/lootledger/engine/internal/crafting"
	"github.com/lootledger/engine/internal/economy"
	"github.com/lootledger/engine/internal/game"
	"github.com/lootledger/engine/internal/handler"
	"github.com/lootledger/engine/internal/loot"
	"github.com/lootledger/engine/internal/player"
	"github.com/lootledger/engine/internal/server"
	"github.com/lootledger/engine/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	ctx := context.Background()

	st, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}

	state, err := bootstrap.LoadOrSeedState(ctx, st, cfg)
	if err != nil {
		slog.Error("Failed to load game state", "error", err)
		os.Exit(1)
	}

	session := game.NewSession(state)
	resolver := catalog.NewResolver(session)

	autosave := worker.NewAutosave(session, st, cfg.AutosaveInterval)
	autosave.Start(ctx)

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.APIKey, trustedProxies(), server.Deps{
		Session:         session,
		Store:           st,
		LootService:     loot.NewService(session),
		EconomyService:  economy.NewService(session),
		CraftingService: crafting.NewService(session),
		PlayerService:   player.NewService(session),
		CatalogService:  catalog.NewService(session, resolver),
		Resolver:        resolver,
		Autosave:        autosave,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:   srv,
		Autosave: autosave,
		Store:    st,
	})
}

// trustedProxies parses the TRUSTED_PROXIES environment variable into a
// list of proxy IPs whose X-Forwarded-For headers are honored.
func trustedProxies() []string {
	raw := os.Getenv("TRUSTED_PROXIES")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	proxies := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			proxies = append(proxies, trimmed)
		}
	}
	return proxies
}
