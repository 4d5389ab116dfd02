package repo

import (
	"context"
	"errors"
	"time"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
)

type UserRepository struct {
	backend store.Backend
	ids     *IDGenerator
}

func NewUserRepository(backend store.Backend, ids *IDGenerator) *UserRepository {
	return &UserRepository{backend: backend, ids: ids}
}

func (repo *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	records, err := repo.backend.GetAll(ctx, store.CollectionUsers)
	if err != nil {
		return nil, err
	}
	return decodeRecords[models.User](records)
}

func (repo *UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	record, err := repo.backend.Get(ctx, store.CollectionUsers, formatID(id))
	if err != nil {
		return models.User{}, err
	}
	return decodeRecord[models.User](record)
}

func (repo *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	records, err := repo.backend.GetBy(ctx, store.CollectionUsers, "username", username)
	if err != nil {
		return models.User{}, err
	}
	if len(records) == 0 {
		return models.User{}, store.ErrNotFound
	}
	return decodeRecord[models.User](records[0])
}

func (repo *UserRepository) Add(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == 0 {
		user.ID = repo.ids.Next()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Type == "" {
		user.Type = models.UserTypeUser
	}

	record, err := encodeRecord(user)
	if err != nil {
		return models.User{}, err
	}
	if err := repo.backend.Add(ctx, store.CollectionUsers, formatID(user.ID), record); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) Update(ctx context.Context, user models.User) (bool, error) {
	key := formatID(user.ID)
	if _, err := repo.backend.Get(ctx, store.CollectionUsers, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	record, err := encodeRecord(user)
	if err != nil {
		return false, err
	}
	if err := repo.backend.Put(ctx, store.CollectionUsers, key, record); err != nil {
		return false, err
	}
	return true, nil
}
