package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mizanhq/mizan/internal/store"
	"github.com/rs/zerolog"
)

// BundleVersion tags the backup format.
const BundleVersion = "2.0"

// Bundle is one full snapshot of every collection. Records are carried as
// raw field maps so a restore reproduces the stored bytes verbatim. A nil
// collection means it was absent from the bundle; restore leaves it empty.
type Bundle struct {
	BackupID    string         `json:"backupId"`
	Users       []store.Record `json:"users"`
	Projects    []store.Record `json:"projects"`
	Items       []store.Record `json:"items"`
	Invoices    []store.Record `json:"invoices"`
	Clients     []store.Record `json:"clients"`
	Payments    []store.Record `json:"payments"`
	Settings    []store.Record `json:"settings"`
	BackupDate  time.Time      `json:"backupDate"`
	Version     string         `json:"version"`
	RecordCount map[string]int `json:"recordCount"`
}

func (bundle *Bundle) collections() map[string][]store.Record {
	all := map[string][]store.Record{
		store.CollectionUsers:    bundle.Users,
		store.CollectionProjects: bundle.Projects,
		store.CollectionItems:    bundle.Items,
		store.CollectionInvoices: bundle.Invoices,
		store.CollectionClients:  bundle.Clients,
		store.CollectionPayments: bundle.Payments,
		store.CollectionSettings: bundle.Settings,
	}
	present := make(map[string][]store.Record, len(all))
	for name, records := range all {
		if records != nil {
			present[name] = records
		}
	}
	return present
}

func (bundle *Bundle) setCollection(name string, records []store.Record) {
	switch name {
	case store.CollectionUsers:
		bundle.Users = records
	case store.CollectionProjects:
		bundle.Projects = records
	case store.CollectionItems:
		bundle.Items = records
	case store.CollectionInvoices:
		bundle.Invoices = records
	case store.CollectionClients:
		bundle.Clients = records
	case store.CollectionPayments:
		bundle.Payments = records
	case store.CollectionSettings:
		bundle.Settings = records
	}
}

// BackupService snapshots and restores the whole store. It works directly on
// the backend: backups carry raw records across every collection, below the
// repositories' typed view.
type BackupService struct {
	backend store.Backend
	log     zerolog.Logger
	now     func() time.Time
}

func NewBackupService(backend store.Backend, log zerolog.Logger) *BackupService {
	return &BackupService{backend: backend, log: log, now: time.Now}
}

// CreateBackup reads all collections concurrently and bundles them with the
// snapshot timestamp, format version and per-collection counts.
func (service *BackupService) CreateBackup(ctx context.Context) (*Bundle, error) {
	type result struct {
		name    string
		records []store.Record
		err     error
	}

	results := make([]result, len(store.Collections))
	var wg sync.WaitGroup
	for position, spec := range store.Collections {
		wg.Add(1)
		go func(position int, name string) {
			defer wg.Done()
			records, err := service.backend.GetAll(ctx, name)
			results[position] = result{name: name, records: records, err: err}
		}(position, spec.Name)
	}
	wg.Wait()

	bundle := &Bundle{
		BackupID:    uuid.NewString(),
		BackupDate:  service.now(),
		Version:     BundleVersion,
		RecordCount: make(map[string]int, len(store.Collections)),
	}
	for _, outcome := range results {
		if outcome.err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", outcome.name, outcome.err)
		}
		bundle.setCollection(outcome.name, outcome.records)
		bundle.RecordCount[outcome.name] = len(outcome.records)
	}

	service.log.Info().
		Str("backupId", bundle.BackupID).
		Interface("recordCount", bundle.RecordCount).
		Msg("backup created")
	return bundle, nil
}

// RestoreBackup clears every collection and rewrites those present in the
// bundle. Collections missing from the bundle stay empty, not reseeded.
func (service *BackupService) RestoreBackup(ctx context.Context, bundle *Bundle) error {
	if bundle == nil {
		return fmt.Errorf("nil backup bundle")
	}

	if err := service.backend.ReplaceAll(ctx, bundle.collections()); err != nil {
		return err
	}
	service.log.Info().
		Str("backupId", bundle.BackupID).
		Str("version", bundle.Version).
		Msg("backup restored")
	return nil
}
