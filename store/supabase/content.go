package supabase

import (
	"context"
	"fmt"

	"leadhub/models"
	"leadhub/store"
)

type brokerLinkRepo struct{ *backend }

func (r brokerLinkRepo) List(ctx context.Context, activeOnly bool) ([]models.BrokerLink, error) {
	q := r.client.From("broker_links").Select("*", "", false)
	if activeOnly {
		q = q.Eq("is_active", "true")
	}
	var links []models.BrokerLink
	if _, err := q.Order("name", ascending).ExecuteTo(&links); err != nil {
		return nil, fmt.Errorf("list broker links: %w", err)
	}
	return links, nil
}

func (r brokerLinkRepo) Get(ctx context.Context, id int64) (*models.BrokerLink, error) {
	var rows []models.BrokerLink
	_, err := r.client.From("broker_links").
		Select("*", "", false).
		Eq("id", idParam(id)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get broker link %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r brokerLinkRepo) Create(ctx context.Context, link *models.BrokerLink) (int64, error) {
	if link.Name == "" || link.URL == "" {
		return 0, fmt.Errorf("%w: broker link name and url are required", store.ErrValidation)
	}

	payload := map[string]any{
		"name":        link.Name,
		"url":         link.URL,
		"description": link.Description,
		"is_active":   true,
	}

	var rows []models.BrokerLink
	_, err := r.client.From("broker_links").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("create broker link: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("create broker link: no row returned")
	}
	link.ID = rows[0].ID
	link.IsActive = true
	return link.ID, nil
}

func (r brokerLinkRepo) Update(ctx context.Context, id int64, p store.BrokerLinkPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	_, _, err := r.client.From("broker_links").
		Update(fields, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("update broker link %d: %w", id, err)
	}
	return nil
}

func (r brokerLinkRepo) Delete(ctx context.Context, id int64) error {
	_, _, err := r.client.From("broker_links").
		Delete("minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("delete broker link %d: %w", id, err)
	}
	return nil
}

type scriptRepo struct{ *backend }

func (r scriptRepo) List(ctx context.Context, category string, activeOnly bool) ([]models.Script, error) {
	q := r.client.From("scripts").Select("*", "", false)
	if category != "" {
		q = q.Eq("category", category)
	}
	if activeOnly {
		q = q.Eq("is_active", "true")
	}
	var scripts []models.Script
	if _, err := q.Order("title", ascending).ExecuteTo(&scripts); err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	return scripts, nil
}

func (r scriptRepo) Get(ctx context.Context, id int64) (*models.Script, error) {
	var rows []models.Script
	_, err := r.client.From("scripts").
		Select("*", "", false).
		Eq("id", idParam(id)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get script %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r scriptRepo) Create(ctx context.Context, script *models.Script) (int64, error) {
	if script.Title == "" {
		return 0, fmt.Errorf("%w: script title is required", store.ErrValidation)
	}

	payload := map[string]any{
		"title":       script.Title,
		"content":     script.Content,
		"script_type": script.ScriptType,
		"category":    script.Category,
		"is_active":   true,
		"created_by":  script.CreatedBy,
	}

	var rows []models.Script
	_, err := r.client.From("scripts").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("create script: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("create script: no row returned")
	}
	script.ID = rows[0].ID
	script.IsActive = true
	return script.ID, nil
}

func (r scriptRepo) Update(ctx context.Context, id int64, p store.ScriptPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	_, _, err := r.client.From("scripts").
		Update(fields, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("update script %d: %w", id, err)
	}
	return nil
}

func (r scriptRepo) Delete(ctx context.Context, id int64) error {
	_, _, err := r.client.From("scripts").
		Delete("minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("delete script %d: %w", id, err)
	}
	return nil
}
