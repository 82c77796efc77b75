package supabase

import (
	"context"
	"fmt"

	"leadhub/models"
	"leadhub/store"
)

type settingRepo struct{ *backend }

func (r settingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	var rows []models.Setting
	_, err := r.client.From("settings").
		Select("*", "", false).
		Eq("key", key).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get setting %q: %w", key, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r settingRepo) Set(ctx context.Context, key, value, description string) error {
	if key == "" {
		return fmt.Errorf("%w: setting key is required", store.ErrValidation)
	}
	payload := map[string]any{
		"key":         key,
		"value":       value,
		"description": description,
	}
	_, _, err := r.client.From("settings").
		Insert(payload, true, "key", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (r settingRepo) List(ctx context.Context, prefix string) ([]models.Setting, error) {
	q := r.client.From("settings").Select("*", "", false)
	if prefix != "" {
		q = q.Like("key", prefix+"*")
	}
	var settings []models.Setting
	if _, err := q.Order("key", ascending).ExecuteTo(&settings); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

type activityRepo struct{ *backend }

// Log appends an audit record. Failures never reach the caller; they
// are logged to the operator console and swallowed.
func (r activityRepo) Log(ctx context.Context, entry models.ActivityLogEntry) {
	payload := map[string]any{
		"user_id":     entry.UserID,
		"action":      entry.Action,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"details":     entry.Details,
	}
	_, _, err := r.client.From("activity_log").
		Insert(payload, false, "", "minimal", "").
		Execute()
	if err != nil {
		r.log.WithError(err).WithField("action", entry.Action).Warn("activity log write failed")
	}
}

func (r activityRepo) List(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	var entries []models.ActivityLogEntry
	_, err := r.client.From("activity_log").
		Select("*", "", false).
		Order("created_at", descending).
		Limit(store.NormalizeLimit(limit), "").
		ExecuteTo(&entries)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	userIDs := store.DistinctIDs(len(entries), func(i int) *int64 { return entries[i].UserID })
	names := r.userNames(userIDs)
	for i := range entries {
		entries[i].UserName = store.NamePartFromMap(names, entries[i].UserID)
	}
	return entries, nil
}
