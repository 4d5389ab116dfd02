package repo

import (
	"context"
	"errors"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
)

// SettingsRepository is keyed by the setting name rather than a generated id.
type SettingsRepository struct {
	backend store.Backend
}

func NewSettingsRepository(backend store.Backend) *SettingsRepository {
	return &SettingsRepository{backend: backend}
}

// Get returns the stored value and whether the key is set at all.
func (repo *SettingsRepository) Get(ctx context.Context, key string) (any, bool, error) {
	record, err := repo.backend.Get(ctx, store.CollectionSettings, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	setting, err := decodeRecord[models.Setting](record)
	if err != nil {
		return nil, false, err
	}
	return setting.Value, true, nil
}

func (repo *SettingsRepository) Set(ctx context.Context, key string, value any) error {
	record, err := encodeRecord(models.Setting{Key: key, Value: value})
	if err != nil {
		return err
	}
	return repo.backend.Put(ctx, store.CollectionSettings, key, record)
}

func (repo *SettingsRepository) GetAll(ctx context.Context) ([]models.Setting, error) {
	records, err := repo.backend.GetAll(ctx, store.CollectionSettings)
	if err != nil {
		return nil, err
	}
	return decodeRecords[models.Setting](records)
}
