// Package store provides the storage backend abstraction: named collections
// of JSON-shaped records served by either a structured SQLite store or a
// flat per-collection JSON file store. Both variants answer the same
// queries with identical results; the structured variant merely uses
// secondary indexes to narrow scans.
package store

import "context"

// Record is one persisted entity as a flat field map, exactly as it is
// serialized. Repositories convert between Record and their typed models.
type Record map[string]any

const (
	CollectionUsers    = "users"
	CollectionProjects = "projects"
	CollectionItems    = "items"
	CollectionInvoices = "invoices"
	CollectionClients  = "clients"
	CollectionPayments = "payments"
	CollectionSettings = "settings"
)

type IndexSpec struct {
	Field  string
	Unique bool
}

type CollectionSpec struct {
	Name    string
	KeyName string
	Indexes []IndexSpec
}

// Collections is the full schema. Index fields mirror the record field
// names; the settings collection is keyed by "key" instead of "id".
var Collections = []CollectionSpec{
	{Name: CollectionUsers, KeyName: "id", Indexes: []IndexSpec{{Field: "username", Unique: true}}},
	{Name: CollectionProjects, KeyName: "id", Indexes: []IndexSpec{{Field: "status"}, {Field: "clientId"}}},
	{Name: CollectionItems, KeyName: "id"},
	{Name: CollectionInvoices, KeyName: "id", Indexes: []IndexSpec{{Field: "status"}, {Field: "clientId"}, {Field: "dueDate"}}},
	{Name: CollectionClients, KeyName: "id", Indexes: []IndexSpec{{Field: "type"}, {Field: "status"}}},
	{Name: CollectionPayments, KeyName: "id", Indexes: []IndexSpec{{Field: "invoiceId"}, {Field: "date"}}},
	{Name: CollectionSettings, KeyName: "key"},
}

func CollectionByName(name string) (CollectionSpec, bool) {
	for _, spec := range Collections {
		if spec.Name == name {
			return spec, true
		}
	}
	return CollectionSpec{}, false
}

// Backend is the storage strategy selected once at startup. Keys are strings;
// numeric entity ids are formatted as decimal by the repositories.
//
// GetAll and GetBy return records in insertion order, for both variants.
type Backend interface {
	// Name reports which variant is active ("sqlite" or "flat").
	Name() string

	Get(ctx context.Context, collection string, key string) (Record, error)
	GetAll(ctx context.Context, collection string) ([]Record, error)
	// GetBy returns records whose indexed field equals value. On the flat
	// variant this is a linear scan; results match GetAll filtered in memory.
	GetBy(ctx context.Context, collection string, field string, value string) ([]Record, error)
	// Add inserts a new record and fails with ErrDuplicateKey if the key
	// (or a unique-indexed field) is already present.
	Add(ctx context.Context, collection string, key string, record Record) error
	// Put upserts, preserving the record's insertion position when the key
	// already exists.
	Put(ctx context.Context, collection string, key string, record Record) error
	Delete(ctx context.Context, collection string, key string) error

	// ReplaceAll clears every known collection and rewrites those present in
	// data, in slice order. Collections absent from data stay empty. The
	// structured variant runs the whole replacement in one transaction.
	ReplaceAll(ctx context.Context, data map[string][]Record) error

	Close() error
}
