package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"mapstats/internal/models"
	"mapstats/internal/shared/filestorages"
)

// CooldownStore persists the collector's per-server probe cooldowns between
// restarts, so a fresh process does not hammer servers that were already
// backing off.
//
//go:generate mockgen -source=cooldown_store.go -destination=./mocks/cooldown_store_mock.go -package=mocks
type CooldownStore interface {
	Save(ctx context.Context, cooldowns map[string]models.ServerCooldown) error
	Load(ctx context.Context) (map[string]models.ServerCooldown, error)
}

type cooldownStore struct {
	fileStorage filestorages.FileStorage
	key         string
}

func NewCooldownStore(fileStorage filestorages.FileStorage) CooldownStore {
	return &cooldownStore{fileStorage: fileStorage, key: "servers/cooldowns.json"}
}

func (s *cooldownStore) Save(ctx context.Context, cooldowns map[string]models.ServerCooldown) error {
	if len(cooldowns) == 0 {
		return nil
	}
	jsonData, err := json.Marshal(cooldowns)
	if err != nil {
		return fmt.Errorf("failed to marshal cooldowns: %w", err)
	}
	_, err = s.fileStorage.Put(ctx, s.key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put cooldowns: %w", err)
	}
	return nil
}

func (s *cooldownStore) Load(ctx context.Context) (map[string]models.ServerCooldown, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return map[string]models.ServerCooldown{}, nil
		}
		return nil, fmt.Errorf("failed to get cooldowns: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read cooldowns: %w", err)
	}
	cooldowns := map[string]models.ServerCooldown{}
	if err := json.Unmarshal(data, &cooldowns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cooldowns: %w", err)
	}
	return cooldowns, nil
}
