package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"leadhub/models"
	"leadhub/store"
)

type brokerLinkRepo struct{ *backend }

func (r brokerLinkRepo) List(ctx context.Context, activeOnly bool) ([]models.BrokerLink, error) {
	q := r.db.WithContext(ctx).Model(&models.BrokerLink{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var links []models.BrokerLink
	if err := q.Order("name").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list broker links: %w", err)
	}
	return links, nil
}

func (r brokerLinkRepo) Get(ctx context.Context, id int64) (*models.BrokerLink, error) {
	var link models.BrokerLink
	err := r.db.WithContext(ctx).First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get broker link %d: %w", id, err)
	}
	return &link, nil
}

func (r brokerLinkRepo) Create(ctx context.Context, link *models.BrokerLink) (int64, error) {
	if link.Name == "" || link.URL == "" {
		return 0, fmt.Errorf("%w: broker link name and url are required", store.ErrValidation)
	}
	link.IsActive = true
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return 0, fmt.Errorf("create broker link: %w", err)
	}
	return link.ID, nil
}

func (r brokerLinkRepo) Update(ctx context.Context, id int64, p store.BrokerLinkPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.BrokerLink{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update broker link %d: %w", id, err)
	}
	return nil
}

func (r brokerLinkRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.BrokerLink{}, id).Error; err != nil {
		return fmt.Errorf("delete broker link %d: %w", id, err)
	}
	return nil
}

type scriptRepo struct{ *backend }

func (r scriptRepo) List(ctx context.Context, category string, activeOnly bool) ([]models.Script, error) {
	q := r.db.WithContext(ctx).Model(&models.Script{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var scripts []models.Script
	if err := q.Order("title").Find(&scripts).Error; err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	return scripts, nil
}

func (r scriptRepo) Get(ctx context.Context, id int64) (*models.Script, error) {
	var script models.Script
	err := r.db.WithContext(ctx).First(&script, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get script %d: %w", id, err)
	}
	return &script, nil
}

func (r scriptRepo) Create(ctx context.Context, script *models.Script) (int64, error) {
	if script.Title == "" {
		return 0, fmt.Errorf("%w: script title is required", store.ErrValidation)
	}
	script.IsActive = true
	if err := r.db.WithContext(ctx).Create(script).Error; err != nil {
		return 0, fmt.Errorf("create script: %w", err)
	}
	return script.ID, nil
}

func (r scriptRepo) Update(ctx context.Context, id int64, p store.ScriptPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Script{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update script %d: %w", id, err)
	}
	return nil
}

func (r scriptRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Script{}, id).Error; err != nil {
		return fmt.Errorf("delete script %d: %w", id, err)
	}
	return nil
}
