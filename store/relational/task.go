package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"leadhub/models"
	"leadhub/store"
)

type taskRepo struct{ *backend }

func (r taskRepo) List(ctx context.Context, f store.TaskFilter) ([]models.Task, error) {
	q := r.db.WithContext(ctx).Model(&models.Task{})
	if f.StateID != nil {
		q = q.Where("state_id = ?", *f.StateID)
	}
	if f.TypeID != nil {
		q = q.Where("type_id = ?", *f.TypeID)
	}
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *f.AssignedTo)
	}
	if f.LeadID != nil {
		q = q.Where("lead_id = ?", *f.LeadID)
	}

	var tasks []models.Task
	err := q.Order("created_at DESC").
		Limit(store.NormalizeLimit(f.Limit)).
		Offset(f.Offset).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	r.annotateTasks(ctx, tasks)
	return tasks, nil
}

func (r taskRepo) Get(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}

	batch := []models.Task{task}
	r.annotateTasks(ctx, batch)
	return &batch[0], nil
}

func (r taskRepo) Create(ctx context.Context, task *models.Task) (int64, error) {
	if task.Title == "" {
		return 0, fmt.Errorf("%w: task title is required", store.ErrValidation)
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	return task.ID, nil
}

func (r taskRepo) Update(ctx context.Context, id int64, p store.TaskPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	return nil
}

func (r taskRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Task{}, id).Error; err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// Advance moves the task to the next state in the task-state list's
// insertion order. The read and the write are not atomic; a
// concurrent advance of the same task can race (single-writer
// assumption, as for the other read-then-write sequences here).
func (r taskRepo) Advance(ctx context.Context, id int64) (*models.AdvanceResult, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("advance task %d: %w", id, err)
	}

	var states []models.Lookup
	if err := r.db.WithContext(ctx).Table(models.TableTaskStates).Order("id").Find(&states).Error; err != nil {
		return nil, fmt.Errorf("advance task %d: load states: %w", id, err)
	}

	result, next := store.PlanAdvance(&task, states)
	if next == nil {
		return result, nil
	}
	err = r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", id).
		Update("state_id", next.ID).Error
	if err != nil {
		return nil, fmt.Errorf("advance task %d: %w", id, err)
	}
	return result, nil
}
