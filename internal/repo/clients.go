package repo

import (
	"context"
	"errors"
	"time"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
)

type ClientRepository struct {
	backend store.Backend
	ids     *IDGenerator
}

type ClientFilters struct {
	Type   string
	Status string
}

func NewClientRepository(backend store.Backend, ids *IDGenerator) *ClientRepository {
	return &ClientRepository{backend: backend, ids: ids}
}

func (repo *ClientRepository) GetAll(ctx context.Context, filters ClientFilters) ([]models.Client, error) {
	var records []store.Record
	var err error

	switch {
	case filters.Type != "":
		records, err = repo.backend.GetBy(ctx, store.CollectionClients, "type", filters.Type)
	case filters.Status != "":
		records, err = repo.backend.GetBy(ctx, store.CollectionClients, "status", filters.Status)
	default:
		records, err = repo.backend.GetAll(ctx, store.CollectionClients)
	}
	if err != nil {
		return nil, err
	}

	clients, err := decodeRecords[models.Client](records)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Client, 0, len(clients))
	for _, client := range clients {
		if filters.Type != "" && client.Type != filters.Type {
			continue
		}
		if filters.Status != "" && client.Status != filters.Status {
			continue
		}
		matched = append(matched, client)
	}
	return matched, nil
}

func (repo *ClientRepository) GetByID(ctx context.Context, id int64) (models.Client, error) {
	record, err := repo.backend.Get(ctx, store.CollectionClients, formatID(id))
	if err != nil {
		return models.Client{}, err
	}
	return decodeRecord[models.Client](record)
}

func (repo *ClientRepository) Add(ctx context.Context, client models.Client) (models.Client, error) {
	if client.ID == 0 {
		client.ID = repo.ids.Next()
	}
	if client.ClientNumber == "" {
		client.ClientNumber = formatNumber(ClientNumberPrefix, client.ID)
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}
	if client.Status == "" {
		client.Status = models.ClientStatusActive
	}
	client.TotalInvoices = 0
	client.TotalPaid = 0
	client.TotalBalance = 0

	record, err := encodeRecord(client)
	if err != nil {
		return models.Client{}, err
	}
	if err := repo.backend.Add(ctx, store.CollectionClients, formatID(client.ID), record); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

func (repo *ClientRepository) Update(ctx context.Context, client models.Client) (bool, error) {
	key := formatID(client.ID)
	if _, err := repo.backend.Get(ctx, store.CollectionClients, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	record, err := encodeRecord(client)
	if err != nil {
		return false, err
	}
	if err := repo.backend.Put(ctx, store.CollectionClients, key, record); err != nil {
		return false, err
	}
	return true, nil
}
