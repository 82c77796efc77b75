package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"leadhub/models"
	"leadhub/store"
)

type groupRepo struct{ *backend }

func (r groupRepo) List(ctx context.Context, includeInactive bool) ([]models.LeadGroup, error) {
	q := r.db.WithContext(ctx).Model(&models.LeadGroup{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var groups []models.LeadGroup
	if err := q.Order("name").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (r groupRepo) Get(ctx context.Context, id int64) (*models.LeadGroup, error) {
	var group models.LeadGroup
	err := r.db.WithContext(ctx).First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get group %d: %w", id, err)
	}

	members, err := r.members(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return &group, nil
}

func (r groupRepo) Create(ctx context.Context, group *models.LeadGroup) (int64, error) {
	if group.Name == "" {
		return 0, fmt.Errorf("%w: group name is required", store.ErrValidation)
	}
	group.IsActive = true
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return 0, fmt.Errorf("create group: %w", err)
	}
	return group.ID, nil
}

func (r groupRepo) Update(ctx context.Context, id int64, p store.GroupPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.LeadGroup{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update group %d: %w", id, err)
	}
	return nil
}

func (r groupRepo) Deactivate(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&models.LeadGroup{}).Where("id = ?", id).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("deactivate group %d: %w", id, err)
	}
	return nil
}

func (r groupRepo) AddMember(ctx context.Context, groupID, userID int64, canManage bool) error {
	// One membership per (group, user); re-adding updates the
	// management flag instead of duplicating the row.
	var existing models.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&existing).Error
	switch {
	case err == nil:
		return r.db.WithContext(ctx).Model(&existing).Update("can_manage", canManage).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		member := models.GroupMember{GroupID: groupID, UserID: userID, CanManage: canManage}
		if err := r.db.WithContext(ctx).Create(&member).Error; err != nil {
			return fmt.Errorf("add group member: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("add group member: %w", err)
	}
}

func (r groupRepo) RemoveMember(ctx context.Context, groupID, userID int64) error {
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
	if err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}

func (r groupRepo) AssignLead(ctx context.Context, leadID int64, groupID *int64) error {
	err := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", leadID).
		Update("group_id", groupID).Error
	if err != nil {
		return fmt.Errorf("assign lead %d to group: %w", leadID, err)
	}
	return nil
}

func (r groupRepo) members(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := r.db.WithContext(ctx).Where("group_id = ?", groupID).Order("id").Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}

	userIDs := store.DistinctIDs(len(members), func(i int) *int64 { return &members[i].UserID })
	names := r.userNames(ctx, userIDs)
	for i := range members {
		members[i].UserName = names[members[i].UserID]
	}
	return members, nil
}
