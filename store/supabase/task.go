package supabase

import (
	"context"
	"fmt"

	"leadhub/models"
	"leadhub/store"
)

type taskRepo struct{ *backend }

func (r taskRepo) List(ctx context.Context, f store.TaskFilter) ([]models.Task, error) {
	q := r.client.From("tasks").Select("*", "", false)
	if f.StateID != nil {
		q = q.Eq("state_id", idParam(*f.StateID))
	}
	if f.TypeID != nil {
		q = q.Eq("type_id", idParam(*f.TypeID))
	}
	if f.AssignedTo != nil {
		q = q.Eq("assigned_to", idParam(*f.AssignedTo))
	}
	if f.LeadID != nil {
		q = q.Eq("lead_id", idParam(*f.LeadID))
	}

	limit := store.NormalizeLimit(f.Limit)
	var tasks []models.Task
	_, err := q.Order("created_at", descending).
		Range(f.Offset, f.Offset+limit-1, "").
		ExecuteTo(&tasks)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	r.annotateTasks(ctx, tasks)
	return tasks, nil
}

func (r taskRepo) Get(ctx context.Context, id int64) (*models.Task, error) {
	var rows []models.Task
	_, err := r.client.From("tasks").
		Select("*", "", false).
		Eq("id", idParam(id)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	r.annotateTasks(ctx, rows[:1])
	return &rows[0], nil
}

func (r taskRepo) Create(ctx context.Context, task *models.Task) (int64, error) {
	if task.Title == "" {
		return 0, fmt.Errorf("%w: task title is required", store.ErrValidation)
	}

	payload := map[string]any{
		"title":       task.Title,
		"description": task.Description,
		"type_id":     task.TypeID,
		"state_id":    task.StateID,
		"priority_id": task.PriorityID,
		"assigned_to": task.AssignedTo,
		"lead_id":     task.LeadID,
		"due_date":    task.DueDate,
		"created_by":  task.CreatedBy,
	}

	var rows []models.Task
	_, err := r.client.From("tasks").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("create task: no row returned")
	}
	task.ID = rows[0].ID
	return task.ID, nil
}

func (r taskRepo) Update(ctx context.Context, id int64, p store.TaskPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	_, _, err := r.client.From("tasks").
		Update(fields, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	return nil
}

func (r taskRepo) Delete(ctx context.Context, id int64) error {
	_, _, err := r.client.From("tasks").
		Delete("minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// Advance moves the task to the next state in the task-state list's
// insertion order. The read and the write are separate REST calls; a
// concurrent advance of the same task can race (single-writer
// assumption, as for the other read-then-write sequences here).
func (r taskRepo) Advance(ctx context.Context, id int64) (*models.AdvanceResult, error) {
	var rows []models.Task
	_, err := r.client.From("tasks").
		Select("*", "", false).
		Eq("id", idParam(id)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("advance task %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var states []models.Lookup
	_, err = r.client.From(models.TableTaskStates).
		Select("*", "", false).
		Order("id", ascending).
		ExecuteTo(&states)
	if err != nil {
		return nil, fmt.Errorf("advance task %d: load states: %w", id, err)
	}

	result, next := store.PlanAdvance(&rows[0], states)
	if next == nil {
		return result, nil
	}
	_, _, err = r.client.From("tasks").
		Update(map[string]any{"state_id": next.ID}, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("advance task %d: %w", id, err)
	}
	return result, nil
}
