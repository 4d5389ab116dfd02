package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mizanhq/mizan/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBackend(t *testing.T) store.Backend {
	t.Helper()
	backend, err := store.OpenFlat(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

func seedBackupFixture(t *testing.T, backend store.Backend) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, backend.Add(ctx, store.CollectionInvoices, "1", store.Record{"id": 1.0, "total": 100.0, "status": "pending"}))
	require.NoError(t, backend.Add(ctx, store.CollectionInvoices, "2", store.Record{"id": 2.0, "total": 200.0, "status": "paid"}))
	require.NoError(t, backend.Add(ctx, store.CollectionPayments, "3", store.Record{"id": 3.0, "invoiceId": 2.0, "amount": 200.0}))
	require.NoError(t, backend.Add(ctx, store.CollectionSettings, "theme", store.Record{"key": "theme", "value": "dark"}))
}

func TestCreateBackup(t *testing.T) {
	backend := openTestBackend(t)
	seedBackupFixture(t, backend)
	service := NewBackupService(backend, zerolog.Nop())

	bundle, err := service.CreateBackup(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, bundle.BackupID)
	assert.Equal(t, BundleVersion, bundle.Version)
	assert.False(t, bundle.BackupDate.IsZero())
	assert.Len(t, bundle.Invoices, 2)
	assert.Len(t, bundle.Payments, 1)
	assert.Len(t, bundle.Settings, 1)
	assert.Equal(t, 2, bundle.RecordCount[store.CollectionInvoices])
	assert.Equal(t, 0, bundle.RecordCount[store.CollectionUsers])
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := openTestBackend(t)
	seedBackupFixture(t, source)

	bundle, err := NewBackupService(source, zerolog.Nop()).CreateBackup(ctx)
	require.NoError(t, err)

	// Through the wire format, as a restore from an exported file would go.
	encoded, err := json.Marshal(bundle)
	require.NoError(t, err)
	decoded := &Bundle{}
	require.NoError(t, json.Unmarshal(encoded, decoded))

	target := openTestBackend(t)
	require.NoError(t, NewBackupService(target, zerolog.Nop()).RestoreBackup(ctx, decoded))

	for _, collection := range []string{store.CollectionInvoices, store.CollectionPayments, store.CollectionSettings} {
		want, err := source.GetAll(ctx, collection)
		require.NoError(t, err)
		got, err := target.GetAll(ctx, collection)
		require.NoError(t, err)
		assert.Equal(t, want, got, collection)
	}
}

func TestRestoreClearsCollectionsMissingFromBundle(t *testing.T) {
	ctx := context.Background()
	backend := openTestBackend(t)
	seedBackupFixture(t, backend)
	service := NewBackupService(backend, zerolog.Nop())

	bundle := &Bundle{
		BackupID: "partial",
		Version:  BundleVersion,
		Invoices: []store.Record{{"id": 9.0, "total": 900.0, "status": "pending"}},
	}
	require.NoError(t, service.RestoreBackup(ctx, bundle))

	invoices, err := backend.GetAll(ctx, store.CollectionInvoices)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, 9.0, invoices[0]["id"])

	payments, err := backend.GetAll(ctx, store.CollectionPayments)
	require.NoError(t, err)
	assert.Empty(t, payments)
	settings, err := backend.GetAll(ctx, store.CollectionSettings)
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestRestoreNilBundle(t *testing.T) {
	service := NewBackupService(openTestBackend(t), zerolog.Nop())
	assert.Error(t, service.RestoreBackup(context.Background(), nil))
}
