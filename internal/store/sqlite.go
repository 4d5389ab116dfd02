package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLiteBackend is the structured variant: one table per collection holding
// the serialized record plus extracted secondary-index columns.
type SQLiteBackend struct {
	database *gorm.DB
}

func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return &SQLiteBackend{database: database}, nil
}

func (backend *SQLiteBackend) Name() string {
	return "sqlite"
}

type recordRow struct {
	Record string `gorm:"column:record"`
}

func (backend *SQLiteBackend) Get(ctx context.Context, collection string, key string) (Record, error) {
	if _, ok := CollectionByName(collection); !ok {
		return nil, storageErr(backend.Name(), "get", collection, fmt.Errorf("unknown collection"))
	}

	row := recordRow{}
	result := backend.database.WithContext(ctx).
		Raw(fmt.Sprintf(`SELECT record FROM %s WHERE id = ?`, collection), key).
		Scan(&row)
	if result.Error != nil {
		return nil, storageErr(backend.Name(), "get", collection, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return decodeStoredRecord(backend.Name(), collection, row.Record)
}

func (backend *SQLiteBackend) GetAll(ctx context.Context, collection string) ([]Record, error) {
	return backend.scan(ctx, collection, fmt.Sprintf(`SELECT record FROM %s ORDER BY rowid`, collection))
}

func (backend *SQLiteBackend) GetBy(ctx context.Context, collection string, field string, value string) ([]Record, error) {
	spec, ok := CollectionByName(collection)
	if !ok {
		return nil, storageErr(backend.Name(), "getBy", collection, fmt.Errorf("unknown collection"))
	}

	if !spec.hasIndex(field) {
		// Non-indexed field: full scan with in-memory matching, same as
		// the flat variant.
		records, err := backend.GetAll(ctx, collection)
		if err != nil {
			return nil, err
		}
		return filterByField(records, field, value), nil
	}

	query := fmt.Sprintf(`SELECT record FROM %s WHERE %s = ? ORDER BY rowid`, collection, indexColumn(field))
	return backend.scan(ctx, collection, query, value)
}

func (backend *SQLiteBackend) scan(ctx context.Context, collection string, query string, args ...any) ([]Record, error) {
	if _, ok := CollectionByName(collection); !ok {
		return nil, storageErr(backend.Name(), "getAll", collection, fmt.Errorf("unknown collection"))
	}

	rows := make([]recordRow, 0)
	if err := backend.database.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, storageErr(backend.Name(), "getAll", collection, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record, err := decodeStoredRecord(backend.Name(), collection, row.Record)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (backend *SQLiteBackend) Add(ctx context.Context, collection string, key string, record Record) error {
	return backend.insert(ctx, collection, key, record, false)
}

func (backend *SQLiteBackend) Put(ctx context.Context, collection string, key string, record Record) error {
	return backend.insert(ctx, collection, key, record, true)
}

func (backend *SQLiteBackend) insert(ctx context.Context, collection string, key string, record Record, upsert bool) error {
	spec, ok := CollectionByName(collection)
	if !ok {
		return storageErr(backend.Name(), "put", collection, fmt.Errorf("unknown collection"))
	}

	query, args, err := buildInsert(spec, key, record, upsert)
	if err != nil {
		return storageErr(backend.Name(), "put", collection, err)
	}

	if err := backend.database.WithContext(ctx).Exec(query, args...).Error; err != nil {
		if !upsert && strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrDuplicateKey
		}
		return storageErr(backend.Name(), "put", collection, err)
	}
	return nil
}

func (backend *SQLiteBackend) Delete(ctx context.Context, collection string, key string) error {
	if _, ok := CollectionByName(collection); !ok {
		return storageErr(backend.Name(), "delete", collection, fmt.Errorf("unknown collection"))
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, collection)
	if err := backend.database.WithContext(ctx).Exec(query, key).Error; err != nil {
		return storageErr(backend.Name(), "delete", collection, err)
	}
	return nil
}

// ReplaceAll clears every collection table and bulk-inserts the bundle's
// contents inside a single transaction, so a failed restore leaves the
// previous data intact.
func (backend *SQLiteBackend) ReplaceAll(ctx context.Context, data map[string][]Record) error {
	err := backend.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, spec := range Collections {
			if err := tx.Exec(fmt.Sprintf(`DELETE FROM %s`, spec.Name)).Error; err != nil {
				return fmt.Errorf("clear %s: %w", spec.Name, err)
			}

			for _, record := range data[spec.Name] {
				key, ok := indexValue(record, spec.KeyName)
				if !ok {
					return fmt.Errorf("%s record missing key field %q", spec.Name, spec.KeyName)
				}
				query, args, err := buildInsert(spec, key, record, false)
				if err != nil {
					return fmt.Errorf("encode %s record: %w", spec.Name, err)
				}
				if err := tx.Exec(query, args...).Error; err != nil {
					return fmt.Errorf("insert into %s: %w", spec.Name, err)
				}
			}
		}
		return nil
	})
	return storageErr(backend.Name(), "replaceAll", "*", err)
}

func (backend *SQLiteBackend) Close() error {
	sqlDB, err := backend.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildInsert(spec CollectionSpec, key string, record Record, upsert bool) (string, []any, error) {
	encoded, err := json.Marshal(record)
	if err != nil {
		return "", nil, fmt.Errorf("encode record: %w", err)
	}

	columns := []string{"id", "record"}
	args := []any{key, string(encoded)}
	for _, index := range spec.Indexes {
		columns = append(columns, indexColumn(index.Field))
		if value, ok := indexValue(record, index.Field); ok {
			args = append(args, value)
		} else {
			args = append(args, nil)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, spec.Name, strings.Join(columns, ", "), placeholders)
	if upsert {
		assignments := make([]string, 0, len(columns)-1)
		for _, column := range columns[1:] {
			assignments = append(assignments, fmt.Sprintf("%s = excluded.%s", column, column))
		}
		// ON CONFLICT UPDATE keeps the original rowid, preserving the
		// record's position in insertion-ordered scans.
		query += fmt.Sprintf(` ON CONFLICT(id) DO UPDATE SET %s`, strings.Join(assignments, ", "))
	}
	return query, args, nil
}

// indexColumn maps a camelCase record field to its snake_case column.
func indexColumn(field string) string {
	var builder strings.Builder
	for _, char := range field {
		if char >= 'A' && char <= 'Z' {
			builder.WriteByte('_')
			builder.WriteRune(char + ('a' - 'A'))
			continue
		}
		builder.WriteRune(char)
	}
	return builder.String()
}

func (spec CollectionSpec) hasIndex(field string) bool {
	for _, index := range spec.Indexes {
		if index.Field == field {
			return true
		}
	}
	return false
}

func filterByField(records []Record, field string, value string) []Record {
	matched := make([]Record, 0, len(records))
	for _, record := range records {
		if actual, ok := indexValue(record, field); ok && actual == value {
			matched = append(matched, record)
		}
	}
	return matched
}

func decodeStoredRecord(backendName string, collection string, raw string) (Record, error) {
	record := Record{}
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, storageErr(backendName, "decode", collection, err)
	}
	return record, nil
}
