package repo

import (
	"context"
	"errors"
	"time"

	"github.com/mizanhq/mizan/internal/models"
	"github.com/mizanhq/mizan/internal/store"
)

type ProjectRepository struct {
	backend store.Backend
	ids     *IDGenerator
}

type ProjectFilters struct {
	Status   string
	ClientID int64
}

func NewProjectRepository(backend store.Backend, ids *IDGenerator) *ProjectRepository {
	return &ProjectRepository{backend: backend, ids: ids}
}

func (repo *ProjectRepository) GetAll(ctx context.Context, filters ProjectFilters) ([]models.Project, error) {
	var records []store.Record
	var err error

	switch {
	case filters.Status != "":
		records, err = repo.backend.GetBy(ctx, store.CollectionProjects, "status", filters.Status)
	case filters.ClientID != 0:
		records, err = repo.backend.GetBy(ctx, store.CollectionProjects, "clientId", formatID(filters.ClientID))
	default:
		records, err = repo.backend.GetAll(ctx, store.CollectionProjects)
	}
	if err != nil {
		return nil, err
	}

	projects, err := decodeRecords[models.Project](records)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Project, 0, len(projects))
	for _, project := range projects {
		if filters.Status != "" && project.Status != filters.Status {
			continue
		}
		if filters.ClientID != 0 && project.ClientID != filters.ClientID {
			continue
		}
		matched = append(matched, project)
	}
	return matched, nil
}

func (repo *ProjectRepository) GetByID(ctx context.Context, id int64) (models.Project, error) {
	record, err := repo.backend.Get(ctx, store.CollectionProjects, formatID(id))
	if err != nil {
		return models.Project{}, err
	}
	return decodeRecord[models.Project](record)
}

func (repo *ProjectRepository) Add(ctx context.Context, project models.Project) (models.Project, error) {
	now := time.Now()
	if project.ID == 0 {
		project.ID = repo.ids.Next()
	}
	if project.ProjectNumber == "" {
		project.ProjectNumber = formatNumber(ProjectNumberPrefix, project.ID)
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}
	if project.Progress < 0 {
		project.Progress = 0
	}
	if project.Progress > 100 {
		project.Progress = 100
	}

	record, err := encodeRecord(project)
	if err != nil {
		return models.Project{}, err
	}
	if err := repo.backend.Add(ctx, store.CollectionProjects, formatID(project.ID), record); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (repo *ProjectRepository) Update(ctx context.Context, project models.Project) (bool, error) {
	key := formatID(project.ID)
	if _, err := repo.backend.Get(ctx, store.CollectionProjects, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	project.UpdatedAt = time.Now()
	record, err := encodeRecord(project)
	if err != nil {
		return false, err
	}
	if err := repo.backend.Put(ctx, store.CollectionProjects, key, record); err != nil {
		return false, err
	}
	return true, nil
}
