package repo

import (
	"context"
	"errors"
	"time"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
)

type ItemRepository struct {
	backend store.Backend
	ids     *IDGenerator
}

func NewItemRepository(backend store.Backend, ids *IDGenerator) *ItemRepository {
	return &ItemRepository{backend: backend, ids: ids}
}

func (repo *ItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	records, err := repo.backend.GetAll(ctx, store.CollectionItems)
	if err != nil {
		return nil, err
	}
	return decodeRecords[models.Item](records)
}

func (repo *ItemRepository) GetByID(ctx context.Context, id int64) (models.Item, error) {
	record, err := repo.backend.Get(ctx, store.CollectionItems, formatID(id))
	if err != nil {
		return models.Item{}, err
	}
	return decodeRecord[models.Item](record)
}

func (repo *ItemRepository) Add(ctx context.Context, item models.Item) (models.Item, error) {
	if item.ID == 0 {
		item.ID = repo.ids.Next()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	record, err := encodeRecord(item)
	if err != nil {
		return models.Item{}, err
	}
	if err := repo.backend.Add(ctx, store.CollectionItems, formatID(item.ID), record); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (repo *ItemRepository) Update(ctx context.Context, item models.Item) (bool, error) {
	key := formatID(item.ID)
	if _, err := repo.backend.Get(ctx, store.CollectionItems, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	record, err := encodeRecord(item)
	if err != nil {
		return false, err
	}
	if err := repo.backend.Put(ctx, store.CollectionItems, key, record); err != nil {
		return false, err
	}
	return true, nil
}
