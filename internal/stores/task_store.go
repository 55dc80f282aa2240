package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskboard-dev/taskboard/internal/models"
	"gorm.io/gorm"
)

type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

type CreateTaskInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssigneeID  *uuid.UUID
}

// TaskPatch carries partial updates. Nil fields are left untouched. A non-nil
// AssigneeID that does not resolve to a user clears the assignee.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	AssigneeID  *uuid.UUID
}

func (s *TaskStore) ListAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task

	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task

	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskStore) ListByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	var tasks []models.Task

	if err := s.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskStore) ListAssignedTo(ctx context.Context, assigneeID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task

	if err := s.db.WithContext(ctx).Where("assignee_id = ?", assigneeID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (models.Task, error) {
	var task models.Task

	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("failed to fetch task: %w", err)
	}

	return task, nil
}

// Create stores a new task under an existing project. Any authenticated user
// may create a task in any project. An assignee that does not resolve to a
// user is silently dropped.
func (s *TaskStore) Create(ctx context.Context, input CreateTaskInput, actor *models.User) (models.Task, error) {
	if actor == nil {
		return models.Task{}, ErrUnauthenticated
	}

	var project models.Project

	if err := s.db.WithContext(ctx).Where("id = ?", input.ProjectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrNotFound
		}
		return models.Task{}, fmt.Errorf("failed to fetch project: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.StatusBacklog
	}
	if !status.Valid() {
		return models.Task{}, ErrValidation
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, ErrValidation
	}

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		ProjectID:   project.ID,
		AssigneeID:  s.resolveAssignee(ctx, input.AssigneeID),
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update applies the patch to a task. Any authenticated user may update any
// task; only authentication is checked here.
func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, patch TaskPatch, actor *models.User) (models.Task, error) {
	if actor == nil {
		return models.Task{}, ErrUnauthenticated
	}

	task, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	updates := make(map[string]interface{})

	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return models.Task{}, ErrValidation
		}
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return models.Task{}, ErrValidation
		}
		updates["priority"] = *patch.Priority
	}
	if patch.AssigneeID != nil {
		updates["assignee_id"] = s.resolveAssignee(ctx, patch.AssigneeID)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
			return models.Task{}, fmt.Errorf("failed to update task: %w", err)
		}
	}

	// Refresh so the caller sees the stored row, updated_at included.
	return s.GetByID(ctx, task.ID)
}

func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID, actor *models.User) (models.Task, error) {
	if actor == nil {
		return models.Task{}, ErrUnauthenticated
	}

	task, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if err := s.db.WithContext(ctx).Delete(&task).Error; err != nil {
		return models.Task{}, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

// resolveAssignee returns the id when it references an existing user, nil
// otherwise.
func (s *TaskStore) resolveAssignee(ctx context.Context, assigneeID *uuid.UUID) *uuid.UUID {
	if assigneeID == nil {
		return nil
	}

	var user models.User

	if err := s.db.WithContext(ctx).Where("id = ?", *assigneeID).First(&user).Error; err != nil {
		return nil
	}

	return assigneeID
}
