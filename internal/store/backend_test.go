package store

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestBackends returns a fresh instance of each variant. Parity tests run
// against both so every behavioral guarantee is checked twice.
func openTestBackends(t *testing.T) map[string]Backend {
	t.Helper()

	sqliteBackend, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteBackend.Close() })

	flatBackend, err := OpenFlat(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { flatBackend.Close() })

	return map[string]Backend{
		sqliteBackend.Name(): sqliteBackend,
		flatBackend.Name():   flatBackend,
	}
}

func invoiceRecord(id float64, status string, clientID float64, total float64) Record {
	return Record{
		"id":       id,
		"status":   status,
		"clientId": clientID,
		"total":    total,
	}
}

func TestBackendGetRoundTrip(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			record := invoiceRecord(100, "pending", 7, 2500)

			require.NoError(t, backend.Add(ctx, CollectionInvoices, "100", record))

			got, err := backend.Get(ctx, CollectionInvoices, "100")
			require.NoError(t, err)
			assert.Equal(t, "pending", got["status"])
			assert.Equal(t, 2500.0, got["total"])

			_, err = backend.Get(ctx, CollectionInvoices, "999")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestBackendAddDuplicateKey(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			record := invoiceRecord(1, "pending", 1, 100)

			require.NoError(t, backend.Add(ctx, CollectionInvoices, "1", record))
			err := backend.Add(ctx, CollectionInvoices, "1", record)
			assert.ErrorIs(t, err, ErrDuplicateKey)
		})
	}
}

func TestBackendUniqueUsername(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, backend.Add(ctx, CollectionUsers, "1", Record{"id": 1.0, "username": "admin"}))
			err := backend.Add(ctx, CollectionUsers, "2", Record{"id": 2.0, "username": "admin"})
			assert.ErrorIs(t, err, ErrDuplicateKey)
		})
	}
}

func TestBackendGetAllInsertionOrder(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, id := range []float64{3, 1, 2} {
				require.NoError(t, backend.Add(ctx, CollectionInvoices, strconv.FormatFloat(id, 'f', -1, 64), invoiceRecord(id, "pending", 1, 10)))
			}

			records, err := backend.GetAll(ctx, CollectionInvoices)
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, 3.0, records[0]["id"])
			assert.Equal(t, 1.0, records[1]["id"])
			assert.Equal(t, 2.0, records[2]["id"])
		})
	}
}

func TestBackendPutPreservesPosition(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, backend.Add(ctx, CollectionInvoices, "1", invoiceRecord(1, "pending", 1, 10)))
			require.NoError(t, backend.Add(ctx, CollectionInvoices, "2", invoiceRecord(2, "pending", 1, 20)))

			require.NoError(t, backend.Put(ctx, CollectionInvoices, "1", invoiceRecord(1, "paid", 1, 10)))

			records, err := backend.GetAll(ctx, CollectionInvoices)
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, 1.0, records[0]["id"])
			assert.Equal(t, "paid", records[0]["status"])
			assert.Equal(t, 2.0, records[1]["id"])
		})
	}
}

func TestBackendPutInsertsWhenMissing(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, backend.Put(ctx, CollectionInvoices, "5", invoiceRecord(5, "pending", 1, 50)))

			got, err := backend.Get(ctx, CollectionInvoices, "5")
			require.NoError(t, err)
			assert.Equal(t, 50.0, got["total"])
		})
	}
}

func TestBackendGetByParity(t *testing.T) {
	// Same fixture into both variants, identical answers out, for an
	// indexed field and for a field only the flat variant scans anyway.
	fixture := []Record{
		invoiceRecord(1, "pending", 7, 100),
		invoiceRecord(2, "paid", 7, 200),
		invoiceRecord(3, "pending", 8, 300),
		invoiceRecord(4, "partial", 7, 400),
	}

	results := map[string]map[string][]Record{}
	for name, backend := range openTestBackends(t) {
		ctx := context.Background()
		for position, record := range fixture {
			key := []string{"1", "2", "3", "4"}[position]
			require.NoError(t, backend.Add(ctx, CollectionInvoices, key, record))
		}

		byStatus, err := backend.GetBy(ctx, CollectionInvoices, "status", "pending")
		require.NoError(t, err)
		byTotal, err := backend.GetBy(ctx, CollectionInvoices, "total", "200")
		require.NoError(t, err)
		results[name] = map[string][]Record{"status": byStatus, "total": byTotal}
	}

	assert.Equal(t, results["sqlite"]["status"], results["flat"]["status"])
	assert.Equal(t, results["sqlite"]["total"], results["flat"]["total"])

	require.Len(t, results["flat"]["status"], 2)
	assert.Equal(t, 1.0, results["flat"]["status"][0]["id"])
	assert.Equal(t, 3.0, results["flat"]["status"][1]["id"])
	require.Len(t, results["flat"]["total"], 1)
	assert.Equal(t, 2.0, results["flat"]["total"][0]["id"])
}

func TestBackendDelete(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, backend.Add(ctx, CollectionClients, "1", Record{"id": 1.0, "type": "company", "status": "active"}))

			require.NoError(t, backend.Delete(ctx, CollectionClients, "1"))
			_, err := backend.Get(ctx, CollectionClients, "1")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting an absent key is not an error.
			assert.NoError(t, backend.Delete(ctx, CollectionClients, "1"))
		})
	}
}

func TestBackendReplaceAll(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, backend.Add(ctx, CollectionInvoices, "1", invoiceRecord(1, "pending", 1, 10)))
			require.NoError(t, backend.Add(ctx, CollectionPayments, "2", Record{"id": 2.0, "invoiceId": 1.0, "amount": 10.0}))
			require.NoError(t, backend.Add(ctx, CollectionSettings, "theme", Record{"key": "theme", "value": "dark"}))

			err := backend.ReplaceAll(ctx, map[string][]Record{
				CollectionInvoices: {
					invoiceRecord(10, "paid", 2, 500),
					invoiceRecord(11, "pending", 2, 600),
				},
			})
			require.NoError(t, err)

			invoices, err := backend.GetAll(ctx, CollectionInvoices)
			require.NoError(t, err)
			require.Len(t, invoices, 2)
			assert.Equal(t, 10.0, invoices[0]["id"])
			assert.Equal(t, 11.0, invoices[1]["id"])

			// Collections absent from the replacement end up empty.
			payments, err := backend.GetAll(ctx, CollectionPayments)
			require.NoError(t, err)
			assert.Empty(t, payments)
			settings, err := backend.GetAll(ctx, CollectionSettings)
			require.NoError(t, err)
			assert.Empty(t, settings)
		})
	}
}

func TestBackendUnknownCollection(t *testing.T) {
	for name, backend := range openTestBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := backend.GetAll(ctx, "archives")
			storageError := &StorageError{}
			require.ErrorAs(t, err, &storageError)
			assert.Equal(t, "archives", storageError.Collection)
		})
	}
}

func TestFlatBackendReloadsFromDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := OpenFlat(dir)
	require.NoError(t, err)
	require.NoError(t, first.Add(ctx, CollectionClients, "1", Record{"id": 1.0, "type": "company", "status": "active"}))
	require.NoError(t, first.Close())

	second, err := OpenFlat(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, CollectionClients, "1")
	require.NoError(t, err)
	assert.Equal(t, "company", got["type"])
}

func TestIndexValueNormalization(t *testing.T) {
	record := Record{
		"clientId": float64(42),
		"status":   "pending",
		"active":   true,
		"rate":     1.5,
	}

	value, ok := indexValue(record, "clientId")
	require.True(t, ok)
	assert.Equal(t, "42", value)

	value, ok = indexValue(record, "status")
	require.True(t, ok)
	assert.Equal(t, "pending", value)

	value, ok = indexValue(record, "active")
	require.True(t, ok)
	assert.Equal(t, "true", value)

	value, ok = indexValue(record, "rate")
	require.True(t, ok)
	assert.Equal(t, "1.5", value)

	_, ok = indexValue(record, "missing")
	assert.False(t, ok)
}
