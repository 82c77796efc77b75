package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"leadhub/models"
	"leadhub/store"
)

type templateRepo struct{ *backend }

func (r templateRepo) List(ctx context.Context, templateType string, activeOnly bool) ([]models.ContactTemplate, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactTemplate{})
	if templateType != "" {
		q = q.Where("template_type = ?", templateType)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var templates []models.ContactTemplate
	if err := q.Order("name").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (r templateRepo) Get(ctx context.Context, id int64) (*models.ContactTemplate, error) {
	var t models.ContactTemplate
	err := r.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get template %d: %w", id, err)
	}
	return &t, nil
}

func (r templateRepo) Create(ctx context.Context, t *models.ContactTemplate) (int64, error) {
	if t.Name == "" || t.Body == "" {
		return 0, fmt.Errorf("%w: template name and body are required", store.ErrValidation)
	}
	if t.TemplateType == "" {
		t.TemplateType = models.TemplateTypeEmail
	}
	t.IsActive = true
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return 0, fmt.Errorf("create template: %w", err)
	}
	return t.ID, nil
}

func (r templateRepo) Update(ctx context.Context, id int64, p store.TemplatePatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.ContactTemplate{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update template %d: %w", id, err)
	}
	return nil
}

func (r templateRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.ContactTemplate{}, id).Error; err != nil {
		return fmt.Errorf("delete template %d: %w", id, err)
	}
	return nil
}

type sequenceRepo struct{ *backend }

func (r sequenceRepo) List(ctx context.Context, activeOnly bool) ([]models.ContactSequence, error) {
	q := r.db.WithContext(ctx).Model(&models.ContactSequence{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var sequences []models.ContactSequence
	if err := q.Order("name").Find(&sequences).Error; err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	return sequences, nil
}

func (r sequenceRepo) Get(ctx context.Context, id int64) (*models.ContactSequence, error) {
	var seq models.ContactSequence
	err := r.db.WithContext(ctx).First(&seq, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sequence %d: %w", id, err)
	}

	steps, err := r.steps(ctx, id)
	if err != nil {
		return nil, err
	}
	seq.Steps = steps
	return &seq, nil
}

func (r sequenceRepo) Create(ctx context.Context, seq *models.ContactSequence) (int64, error) {
	if seq.Name == "" {
		return 0, fmt.Errorf("%w: sequence name is required", store.ErrValidation)
	}
	if seq.TriggerEvent == "" {
		seq.TriggerEvent = "manual"
	}
	seq.IsActive = true

	steps := seq.Steps
	seq.Steps = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(seq).Error; err != nil {
			return err
		}
		return createSteps(tx, seq.ID, steps)
	})
	if err != nil {
		return 0, fmt.Errorf("create sequence: %w", err)
	}
	return seq.ID, nil
}

func (r sequenceRepo) Update(ctx context.Context, id int64, p store.SequencePatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.ContactSequence{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update sequence %d: %w", id, err)
	}
	return nil
}

func (r sequenceRepo) SetSteps(ctx context.Context, id int64, steps []models.SequenceStep) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sequence_id = ?", id).Delete(&models.SequenceStep{}).Error; err != nil {
			return err
		}
		return createSteps(tx, id, steps)
	})
	if err != nil {
		return fmt.Errorf("set sequence %d steps: %w", id, err)
	}
	return nil
}

func (r sequenceRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sequence_id = ?", id).Delete(&models.SequenceStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ContactSequence{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete sequence %d: %w", id, err)
	}
	return nil
}

// createSteps numbers steps by slice position, ignoring any caller
// supplied order values.
func createSteps(tx *gorm.DB, sequenceID int64, steps []models.SequenceStep) error {
	for i := range steps {
		steps[i].ID = 0
		steps[i].SequenceID = sequenceID
		steps[i].StepOrder = i + 1
		if err := tx.Create(&steps[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r sequenceRepo) steps(ctx context.Context, sequenceID int64) ([]models.SequenceStep, error) {
	var steps []models.SequenceStep
	err := r.db.WithContext(ctx).
		Where("sequence_id = ?", sequenceID).
		Order("step_order").
		Find(&steps).Error
	if err != nil {
		return nil, fmt.Errorf("list sequence steps: %w", err)
	}

	templateIDs := store.DistinctIDs(len(steps), func(i int) *int64 { return &steps[i].TemplateID })
	if len(templateIDs) > 0 {
		var templates []models.ContactTemplate
		if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", templateIDs).
			Find(&templates).Error; err == nil {
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
