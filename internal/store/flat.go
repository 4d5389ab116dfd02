package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FlatBackend is the fallback variant: each collection lives in one JSON
// file holding the whole record array. All state is mirrored in memory and
// every mutation rewrites the collection file atomically.
type FlatBackend struct {
	dir string

	mu          sync.RWMutex
	collections map[string][]Record
}

func OpenFlat(dir string) (*FlatBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	backend := &FlatBackend{
		dir:         dir,
		collections: make(map[string][]Record, len(Collections)),
	}
	for _, spec := range Collections {
		records, err := backend.loadCollection(spec.Name)
		if err != nil {
			return nil, err
		}
		backend.collections[spec.Name] = records
	}
	return backend, nil
}

func (backend *FlatBackend) Name() string {
	return "flat"
}

func (backend *FlatBackend) loadCollection(collection string) ([]Record, error) {
	content, err := os.ReadFile(backend.collectionPath(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}

	records := make([]Record, 0)
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", collection, err)
	}
	return records, nil
}

func (backend *FlatBackend) collectionPath(collection string) string {
	return filepath.Join(backend.dir, collection+".json")
}

// persistCollection writes through a temp file and renames it into place so
// a crash mid-write never truncates the collection.
func (backend *FlatBackend) persistCollection(collection string) error {
	records := backend.collections[collection]
	encoded, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}

	path := backend.collectionPath(collection)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}
	return nil
}

func (backend *FlatBackend) Get(_ context.Context, collection string, key string) (Record, error) {
	spec, ok := CollectionByName(collection)
	if !ok {
		return nil, storageErr(backend.Name(), "get", collection, fmt.Errorf("unknown collection"))
	}

	backend.mu.RLock()
	defer backend.mu.RUnlock()

	for _, record := range backend.collections[collection] {
		if actual, ok := indexValue(record, spec.KeyName); ok && actual == key {
			return cloneRecord(record), nil
		}
	}
	return nil, ErrNotFound
}

func (backend *FlatBackend) GetAll(_ context.Context, collection string) ([]Record, error) {
	if _, ok := CollectionByName(collection); !ok {
		return nil, storageErr(backend.Name(), "getAll", collection, fmt.Errorf("unknown collection"))
	}

	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return cloneRecords(backend.collections[collection]), nil
}

func (backend *FlatBackend) GetBy(_ context.Context, collection string, field string, value string) ([]Record, error) {
	if _, ok := CollectionByName(collection); !ok {
		return nil, storageErr(backend.Name(), "getBy", collection, fmt.Errorf("unknown collection"))
	}

	backend.mu.RLock()
	defer backend.mu.RUnlock()
	return cloneRecords(filterByField(backend.collections[collection], field, value)), nil
}

func (backend *FlatBackend) Add(_ context.Context, collection string, key string, record Record) error {
	spec, ok := CollectionByName(collection)
	if !ok {
		return storageErr(backend.Name(), "add", collection, fmt.Errorf("unknown collection"))
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()

	for _, existing := range backend.collections[collection] {
		if actual, ok := indexValue(existing, spec.KeyName); ok && actual == key {
			return ErrDuplicateKey
		}
		for _, index := range spec.Indexes {
			if !index.Unique {
				continue
			}
			newValue, hasNew := indexValue(record, index.Field)
			oldValue, hasOld := indexValue(existing, index.Field)
			if hasNew && hasOld && newValue == oldValue {
				return ErrDuplicateKey
			}
		}
	}

	backend.collections[collection] = append(backend.collections[collection], cloneRecord(record))
	return storageErr(backend.Name(), "add", collection, backend.persistCollection(collection))
}

func (backend *FlatBackend) Put(_ context.Context, collection string, key string, record Record) error {
	spec, ok := CollectionByName(collection)
	if !ok {
		return storageErr(backend.Name(), "put", collection, fmt.Errorf("unknown collection"))
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()

	records := backend.collections[collection]
	replaced := false
	for position, existing := range records {
		if actual, ok := indexValue(existing, spec.KeyName); ok && actual == key {
			records[position] = cloneRecord(record)
			replaced = true
			break
		}
	}
	if !replaced {
		backend.collections[collection] = append(records, cloneRecord(record))
	}
	return storageErr(backend.Name(), "put", collection, backend.persistCollection(collection))
}

func (backend *FlatBackend) Delete(_ context.Context, collection string, key string) error {
	spec, ok := CollectionByName(collection)
	if !ok {
		return storageErr(backend.Name(), "delete", collection, fmt.Errorf("unknown collection"))
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()

	records := backend.collections[collection]
	for position, existing := range records {
		if actual, ok := indexValue(existing, spec.KeyName); ok && actual == key {
			backend.collections[collection] = append(records[:position:position], records[position+1:]...)
			break
		}
	}
	return storageErr(backend.Name(), "delete", collection, backend.persistCollection(collection))
}

// ReplaceAll removes every collection file, then rewrites the collections
// present in data. Absent collections stay empty rather than being reseeded.
func (backend *FlatBackend) ReplaceAll(_ context.Context, data map[string][]Record) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()

	for _, spec := range Collections {
		if err := os.Remove(backend.collectionPath(spec.Name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return storageErr(backend.Name(), "replaceAll", spec.Name, err)
		}
		backend.collections[spec.Name] = []Record{}
	}

	for _, spec := range Collections {
		records, present := data[spec.Name]
		if !present {
			continue
		}
		backend.collections[spec.Name] = cloneRecords(records)
		if err := backend.persistCollection(spec.Name); err != nil {
			return storageErr(backend.Name(), "replaceAll", spec.Name, err)
		}
	}
	return nil
}

func (backend *FlatBackend) Close() error {
	return nil
}
