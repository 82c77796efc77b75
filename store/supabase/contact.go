package supabase

import (
	"context"
	"fmt"

	"leadhub/models"
	"leadhub/store"
)

type templateRepo struct{ *backend }

func (r templateRepo) List(ctx context.Context, templateType string, activeOnly bool) ([]models.ContactTemplate, error) {
	q := r.client.From("contact_templates").Select("*", "", false)
	if templateType != "" {
		q = q.Eq("template_type", templateType)
	}
	if activeOnly {
		q = q.Eq("is_active", "true")
	}
	var templates []models.ContactTemplate
	if _, err := q.Order("name", ascending).ExecuteTo(&templates); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (r templateRepo) Get(ctx context.Context, id int64) (*models.ContactTemplate, error) {
	var rows []models.ContactTemplate
	_, err := r.client.From("contact_templates").
		Select("*", "", false).
		Eq("id", idParam(id)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get template %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r templateRepo) Create(ctx context.Context, t *models.ContactTemplate) (int64, error) {
	if t.Name == "" || t.Body == "" {
		return 0, fmt.Errorf("%w: template name and body are required", store.ErrValidation)
	}
	if t.TemplateType == "" {
		t.TemplateType = models.TemplateTypeEmail
	}

	payload := map[string]any{
		"name":          t.Name,
		"template_type": t.TemplateType,
		"subject":       t.Subject,
		"body":          t.Body,
		"is_active":     true,
		"created_by":    t.CreatedBy,
	}

	var rows []models.ContactTemplate
	_, err := r.client.From("contact_templates").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("create template: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("create template: no row returned")
	}
	t.ID = rows[0].ID
	t.IsActive = true
	return t.ID, nil
}

func (r templateRepo) Update(ctx context.Context, id int64, p store.TemplatePatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	_, _, err := r.client.From("contact_templates").
		Update(fields, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("update template %d: %w", id, err)
	}
	return nil
}

func (r templateRepo) Delete(ctx context.Context, id int64) error {
	_, _, err := r.client.From("contact_templates").
		Delete("minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("delete template %d: %w", id, err)
	}
	return nil
}

type sequenceRepo struct{ *backend }

func (r sequenceRepo) List(ctx context.Context, activeOnly bool) ([]models.ContactSequence, error) {
	q := r.client.From("contact_sequences").Select("*", "", false)
	if activeOnly {
		q = q.Eq("is_active", "true")
	}
	var sequences []models.ContactSequence
	if _, err := q.Order("name", ascending).ExecuteTo(&sequences); err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	return sequences, nil
}

func (r sequenceRepo) Get(ctx context.Context, id int64) (*models.ContactSequence, error) {
	var rows []models.ContactSequence
	_, err := r.client.From("contact_sequences").
		Select("*", "", false).
		Eq("id", idParam(id)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get sequence %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	steps, err := r.steps(id)
	if err != nil {
		return nil, err
	}
	rows[0].Steps = steps
	return &rows[0], nil
}

// Create writes the sequence, then its steps. Without transactions a
// failed step insert leaves a sequence with a partial step list.
func (r sequenceRepo) Create(ctx context.Context, seq *models.ContactSequence) (int64, error) {
	if seq.Name == "" {
		return 0, fmt.Errorf("%w: sequence name is required", store.ErrValidation)
	}
	if seq.TriggerEvent == "" {
		seq.TriggerEvent = "manual"
	}

	payload := map[string]any{
		"name":          seq.Name,
		"description":   seq.Description,
		"trigger_event": seq.TriggerEvent,
		"conditions":    seq.Conditions,
		"is_active":     true,
		"created_by":    seq.CreatedBy,
	}

	var rows []models.ContactSequence
	_, err := r.client.From("contact_sequences").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("create sequence: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("create sequence: no row returned")
	}
	seq.ID = rows[0].ID
	seq.IsActive = true

	if err := r.createSteps(seq.ID, seq.Steps); err != nil {
		return 0, fmt.Errorf("create sequence: %w", err)
	}
	return seq.ID, nil
}

func (r sequenceRepo) Update(ctx context.Context, id int64, p store.SequencePatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	_, _, err := r.client.From("contact_sequences").
		Update(fields, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("update sequence %d: %w", id, err)
	}
	return nil
}

func (r sequenceRepo) SetSteps(ctx context.Context, id int64, steps []models.SequenceStep) error {
	if err := r.deleteSteps(id); err != nil {
		return fmt.Errorf("set sequence %d steps: %w", id, err)
	}
	if err := r.createSteps(id, steps); err != nil {
		return fmt.Errorf("set sequence %d steps: %w", id, err)
	}
	return nil
}

func (r sequenceRepo) Delete(ctx context.Context, id int64) error {
	if err := r.deleteSteps(id); err != nil {
		return fmt.Errorf("delete sequence %d: %w", id, err)
	}
	_, _, err := r.client.From("contact_sequences").
		Delete("minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("delete sequence %d: %w", id, err)
	}
	return nil
}

// createSteps numbers steps by slice position, ignoring any caller
// supplied order values.
func (r sequenceRepo) createSteps(sequenceID int64, steps []models.SequenceStep) error {
	if len(steps) == 0 {
		return nil
	}
	payload := make([]map[string]any, len(steps))
	for i, step := range steps {
		payload[i] = map[string]any{
			"sequence_id": sequenceID,
			"template_id": step.TemplateID,
			"step_order":  i + 1,
			"delay_hours": step.DelayHours,
		}
	}
	_, _, err := r.client.From("contact_sequence_steps").
		Insert(payload, false, "", "minimal", "").
		Execute()
	return err
}

func (r sequenceRepo) deleteSteps(sequenceID int64) error {
	_, _, err := r.client.From("contact_sequence_steps").
		Delete("minimal", "").
		Eq("sequence_id", idParam(sequenceID)).
		Execute()
	return err
}

func (r sequenceRepo) steps(sequenceID int64) ([]models.SequenceStep, error) {
	var steps []models.SequenceStep
	_, err := r.client.From("contact_sequence_steps").
		Select("*", "", false).
		Eq("sequence_id", idParam(sequenceID)).
		Order("step_order", ascending).
		ExecuteTo(&steps)
	if err != nil {
		return nil, fmt.Errorf("list sequence steps: %w", err)
	}

	templateIDs := store.DistinctIDs(len(steps), func(i int) *int64 { return &steps[i].TemplateID })
	if len(templateIDs) > 0 {
		var templates []models.ContactTemplate
		_, err := r.client.From("contact_templates").
			Select("id,name", "", false).
			In("id", idList(templateIDs)).
			ExecuteTo(&templates)
		if err == nil {
			names := make(map[int64]string, len(templates))
			for _, t := range templates {
				names[t.ID] = t.Name
			}
			for i := range steps {
				steps[i].TemplateName = names[steps[i].TemplateID]
			}
		}
	}
	return steps, nil
}
