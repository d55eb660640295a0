package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lootledger/engine/internal/catalog"
	"github.com/lootledger/engine/internal/config"
	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/store"
)

// OpenStore creates the persistence backend named by the configuration.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		return store.NewPostgresStore(ctx, cfg.DBConnString(), cfg.SaveSlot)
	default:
		return store.NewFileStore(cfg.SavePath), nil
	}
}

// LoadOrSeedState loads the saved world, or seeds a fresh one from the
// content pack when no save exists yet. A freshly seeded world is saved
// immediately so a crash before the first autosave loses nothing.
func LoadOrSeedState(ctx context.Context, st store.Store, cfg *config.Config) (*domain.GameState, error) {
	state, err := st.Load(ctx)
	if err == nil {
		slog.Info(LogMsgSaveLoaded,
			"players", len(state.Players),
			"tables", len(state.Tables),
			"items", len(state.Items))
		return state, nil
	}
	if !errors.Is(err, store.ErrNoSave) {
		return nil, fmt.Errorf("failed to load saved state: %w", err)
	}

	pack, err := catalog.Load(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load content pack: %w", err)
	}
	if err := catalog.Validate(pack); err != nil {
		return nil, fmt.Errorf("invalid content pack: %w", err)
	}

	state = domain.NewGameState()
	if err := catalog.Apply(pack, state); err != nil {
		return nil, fmt.Errorf("failed to apply content pack: %w", err)
	}
	if err := st.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save seeded state: %w", err)
	}

	slog.Info(LogMsgFreshWorldSeeded,
		"content_path", cfg.ContentPath,
		"tables", len(state.Tables),
		"items", len(state.Items))
	return state, nil
}
