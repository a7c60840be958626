package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"mapstats/internal/shared/filestorages"
)

// ServerNameStore persists the latest display name reported by each server,
// keyed by server ID ("ip:port"). Rankings use these names as labels when
// available.
//
//go:generate mockgen -source=server_name_store.go -destination=./mocks/server_name_store_mock.go -package=mocks
type ServerNameStore interface {
	// UpsertNames merges the given names into the stored set.
	UpsertNames(ctx context.Context, names map[string]string) error
	// Names returns all stored names. An empty store yields an empty map.
	Names(ctx context.Context) (map[string]string, error)
}

type serverNameStore struct {
	fileStorage filestorages.FileStorage
	key         string

	mu sync.Mutex // serializes read-merge-write cycles
}

func NewServerNameStore(fileStorage filestorages.FileStorage) ServerNameStore {
	return &serverNameStore{fileStorage: fileStorage, key: "servers/names.json"}
}

func (s *serverNameStore) UpsertNames(ctx context.Context, names map[string]string) error {
	if len(names) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.load(ctx)
	if err != nil {
		return err
	}
	for serverID, name := range names {
		if name == "" {
			continue
		}
		stored[serverID] = name
	}

	jsonData, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal server names: %w", err)
	}
	_, err = s.fileStorage.Put(ctx, s.key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put server names: %w", err)
	}
	return nil
}

func (s *serverNameStore) Names(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *serverNameStore) load(ctx context.Context) (map[string]string, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to get server names: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read server names: %w", err)
	}
	names := map[string]string{}
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server names: %w", err)
	}
	return names, nil
}
