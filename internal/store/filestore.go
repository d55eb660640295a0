package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lootledger/engine/internal/domain"
	"github.com/lootledger/engine/internal/logger"
)

// FileStore persists the save document as a single JSON file. Writes go
// through a temp file and rename, so a crash mid-save leaves the
// previous snapshot intact.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store. The parent directory is
// created on demand at save time.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (*domain.GameState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("failed to read save file %s: %w", s.path, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode save file %s: %w", s.path, err)
	}
	if env.Version == 0 && env.State == nil {
		// Pre-versioning file: the whole document is the v1 state.
		env.Version = 1
		env.State = data
	}

	state, err := decodeState(env.Version, env.State)
	if err != nil {
		return nil, err
	}
	if env.Version < CurrentVersion {
		logger.Info(LogMsgSaveMigrated, "path", s.path, "from", env.Version, "to", CurrentVersion)
	}
	return state, nil
}

func (s *FileStore) Save(ctx context.Context, state *domain.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	data, err := json.MarshalIndent(envelope{Version: CurrentVersion, State: raw}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace save file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(dir, 0o755)
		}
		return fmt.Errorf("save directory %s not accessible: %w", dir, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
