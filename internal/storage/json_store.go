package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONStore keeps every slot in a single local JSON file. Payloads are stored
// base64 encoded so Load returns exactly the bytes given to Save.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	slots    map[string][]byte
}

// NewJSONStore opens (or creates) the JSON file at filePath.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		slots:    make(map[string][]byte),
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else if err := store.saveToFile(); err != nil {
		return nil, fmt.Errorf("failed to create JSON store file: %w", err)
	}
	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	b, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, &js.slots)
}

// saveToFile writes the file; callers hold the write lock.
func (js *JSONStore) saveToFile() error {
	data, err := json.MarshalIndent(js.slots, "", "  ")
	if err != nil {
		return err
	}
	tmp := js.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, js.filePath)
}

// Load returns the payload stored under key.
func (js *JSONStore) Load(_ context.Context, key string) ([]byte, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	raw, ok := js.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

// Save stores payload under key and rewrites the file.
func (js *JSONStore) Save(_ context.Context, key string, payload []byte) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	js.slots[key] = append([]byte(nil), payload...)
	return js.saveToFile()
}

// Clear removes key and rewrites the file.
func (js *JSONStore) Clear(_ context.Context, key string) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	if _, ok := js.slots[key]; !ok {
		return nil
	}
	delete(js.slots, key)
	return js.saveToFile()
}

// Close is a no-op; every write is already on disk.
func (js *JSONStore) Close() error { return nil }
