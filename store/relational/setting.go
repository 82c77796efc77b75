package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leadhub/models"
	"leadhub/store"
)

type settingRepo struct{ *backend }

func (r settingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting %q: %w", key, err)
	}
	return &setting, nil
}

func (r settingRepo) Set(ctx context.Context, key, value, description string) error {
	if key == "" {
		return fmt.Errorf("%w: setting key is required", store.ErrValidation)
	}
	setting := models.Setting{Key: key, Value: value, Description: description}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&setting).Error
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (r settingRepo) List(ctx context.Context, prefix string) ([]models.Setting, error) {
	q := r.db.WithContext(ctx).Model(&models.Setting{})
	if prefix != "" {
		q = q.Where("key LIKE ?", prefix+"%")
	}
	var settings []models.Setting
	if err := q.Order("key").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

type activityRepo struct{ *backend }

// Log appends an audit record. Failures never reach the caller; they
// are logged to the operator console and swallowed.
func (r activityRepo) Log(ctx context.Context, entry models.ActivityLogEntry) {
	entry.ID = 0
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		r.log.WithError(err).WithField("action", entry.Action).Warn("activity log write failed")
	}
}

func (r activityRepo) List(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	var entries []models.ActivityLogEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(store.NormalizeLimit(limit)).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	userIDs := store.DistinctIDs(len(entries), func(i int) *int64 { return entries[i].UserID })
	names := r.userNames(ctx, userIDs)
	for i := range entries {
		entries[i].UserName = store.NamePartFromMap(names, entries[i].UserID)
	}
	return entries, nil
}
