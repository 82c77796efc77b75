package relational

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"leadhub/models"
	"leadhub/store"
)

type leadRepo struct{ *backend }

func (r leadRepo) List(ctx context.Context, f store.LeadFilter) ([]models.Lead, error) {
	q := r.db.WithContext(ctx).Model(&models.Lead{})
	if f.StateID != nil {
		q = q.Where("state_id = ?", *f.StateID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *f.AssignedTo)
	}
	if f.GroupID != nil {
		q = q.Where("group_id = ?", *f.GroupID)
	}
	if f.Search != "" {
		s := "%" + strings.ToLower(f.Search) + "%"
		// The combined first+last concatenation keeps full-name
		// queries working the same as on the single-column remote
		// store.
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?",
			s, s, s, s, s,
		)
	}

	var leads []models.Lead
	err := q.Order("created_at DESC").
		Limit(store.NormalizeLimit(f.Limit)).
		Offset(f.Offset).
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	r.annotateLeads(ctx, leads)
	for i := range leads {
		leads[i].Normalize()
	}
	return leads, nil
}

func (r leadRepo) Get(ctx context.Context, id int64) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).First(&lead, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead %d: %w", id, err)
	}

	batch := []models.Lead{lead}
	r.annotateLeads(ctx, batch)
	batch[0].Normalize()
	return &batch[0], nil
}

func (r leadRepo) Create(ctx context.Context, lead *models.Lead) (int64, error) {
	lead.Normalize()
	if lead.FirstName == "" && lead.Name == "" {
		return 0, fmt.Errorf("%w: lead name is required", store.ErrValidation)
	}
	if lead.StateID == nil {
		return 0, fmt.Errorf("%w: state_id is required", store.ErrValidation)
	}

	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return 0, fmt.Errorf("create lead: %w", err)
	}
	return lead.ID, nil
}

func (r leadRepo) Update(ctx context.Context, id int64, p store.LeadPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update lead %d: %w", id, err)
	}
	return nil
}

func (r leadRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Lead{}, id).Error; err != nil {
		return fmt.Errorf("delete lead %d: %w", id, err)
	}
	return nil
}
