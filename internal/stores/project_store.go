package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/taskboard-dev/taskboard/internal/models"
	"gorm.io/gorm"
)

type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// ProjectPatch carries partial updates. Nil fields are left untouched, which
// is distinct from a field set to the empty string.
type ProjectPatch struct {
	Name        *string
	Description *string
}

func (s *ProjectStore) ListAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project

	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (s *ProjectStore) ListOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project

	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (s *ProjectStore) GetByID(ctx context.Context, id uuid.UUID) (models.Project, error) {
	var project models.Project

	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, fmt.Errorf("failed to fetch project: %w", err)
	}

	return project, nil
}

func (s *ProjectStore) TaskCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64

	if err := s.db.WithContext(ctx).Model(&models.Task{}).Where("project_id = ?", id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

// Create stores a new project owned by the acting user.
func (s *ProjectStore) Create(ctx context.Context, name, description string, actor *models.User) (models.Project, error) {
	if actor == nil {
		return models.Project{}, ErrUnauthenticated
	}

	if strings.TrimSpace(name) == "" {
		return models.Project{}, ErrValidation
	}

	project := models.Project{
		Name:        name,
		Description: description,
		OwnerID:     actor.ID,
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Update applies the patch to a project. Only the owner may mutate it.
func (s *ProjectStore) Update(ctx context.Context, id uuid.UUID, patch ProjectPatch, actor *models.User) (models.Project, error) {
	if actor == nil {
		return models.Project{}, ErrUnauthenticated
	}

	project, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	if project.OwnerID != actor.ID {
		return models.Project{}, ErrForbidden
	}

	updates := make(map[string]interface{})

	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&project).Updates(updates).Error; err != nil {
			return models.Project{}, fmt.Errorf("failed to update project: %w", err)
		}
	}

	// Refresh so the caller sees the stored row, updated_at included.
	return s.GetByID(ctx, project.ID)
}

// Delete removes a project and all of its tasks in one transaction, so no
// observer sees the project gone with tasks remaining or vice versa.
func (s *ProjectStore) Delete(ctx context.Context, id uuid.UUID, actor *models.User) (models.Project, error) {
	if actor == nil {
		return models.Project{}, ErrUnauthenticated
	}

	project, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	if project.OwnerID != actor.ID {
		return models.Project{}, ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})

	if err != nil {
		return models.Project{}, fmt.Errorf("failed to delete project: %w", err)
	}

	return project, nil
}
