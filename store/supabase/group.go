package supabase

import (
	"context"
	"fmt"

	"leadhub/models"
	"leadhub/store"
)

type groupRepo struct{ *backend }

func (r groupRepo) List(ctx context.Context, includeInactive bool) ([]models.LeadGroup, error) {
	q := r.client.From("lead_groups").Select("*", "", false)
	if !includeInactive {
		q = q.Eq("is_active", "true")
	}
	var groups []models.LeadGroup
	if _, err := q.Order("name", ascending).ExecuteTo(&groups); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (r groupRepo) Get(ctx context.Context, id int64) (*models.LeadGroup, error) {
	var rows []models.LeadGroup
	_, err := r.client.From("lead_groups").
		Select("*", "", false).
		Eq("id", idParam(id)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get group %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	members, err := r.members(id)
	if err != nil {
		return nil, err
	}
	rows[0].Members = members
	return &rows[0], nil
}

func (r groupRepo) Create(ctx context.Context, group *models.LeadGroup) (int64, error) {
	if group.Name == "" {
		return 0, fmt.Errorf("%w: group name is required", store.ErrValidation)
	}

	payload := map[string]any{
		"name":        group.Name,
		"description": group.Description,
		"color":       group.Color,
		"is_active":   true,
		"created_by":  group.CreatedBy,
	}

	var rows []models.LeadGroup
	_, err := r.client.From("lead_groups").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("create group: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("create group: no row returned")
	}
	group.ID = rows[0].ID
	group.IsActive = true
	return group.ID, nil
}

func (r groupRepo) Update(ctx context.Context, id int64, p store.GroupPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	_, _, err := r.client.From("lead_groups").
		Update(fields, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("update group %d: %w", id, err)
	}
	return nil
}

func (r groupRepo) Deactivate(ctx context.Context, id int64) error {
	_, _, err := r.client.From("lead_groups").
		Update(map[string]any{"is_active": false}, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("deactivate group %d: %w", id, err)
	}
	return nil
}

func (r groupRepo) AddMember(ctx context.Context, groupID, userID int64, canManage bool) error {
	// One membership per (group, user); re-adding updates the
	// management flag instead of duplicating the row.
	var existing []models.GroupMember
	_, err := r.client.From("lead_group_members").
		Select("*", "", false).
		Eq("group_id", idParam(groupID)).
		Eq("user_id", idParam(userID)).
		ExecuteTo(&existing)
	if err != nil {
		return fmt.Errorf("add group member: %w", err)
	}

	if len(existing) > 0 {
		_, _, err = r.client.From("lead_group_members").
			Update(map[string]any{"can_manage": canManage}, "minimal", "").
			Eq("id", idParam(existing[0].ID)).
			Execute()
	} else {
		payload := map[string]any{
			"group_id":   groupID,
			"user_id":    userID,
			"can_manage": canManage,
		}
		_, _, err = r.client.From("lead_group_members").
			Insert(payload, false, "", "minimal", "").
			Execute()
	}
	if err != nil {
		return fmt.Errorf("add group member: %w", err)
	}
	return nil
}

func (r groupRepo) RemoveMember(ctx context.Context, groupID, userID int64) error {
	_, _, err := r.client.From("lead_group_members").
		Delete("minimal", "").
		Eq("group_id", idParam(groupID)).
		Eq("user_id", idParam(userID)).
		Execute()
	if err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}

func (r groupRepo) AssignLead(ctx context.Context, leadID int64, groupID *int64) error {
	_, _, err := r.client.From("leads").
		Update(map[string]any{"group_id": groupID}, "minimal", "").
		Eq("id", idParam(leadID)).
		Execute()
	if err != nil {
		return fmt.Errorf("assign lead %d to group: %w", leadID, err)
	}
	return nil
}

func (r groupRepo) members(groupID int64) ([]models.GroupMember, error) {
	var members []models.GroupMember
	_, err := r.client.From("lead_group_members").
		Select("*", "", false).
		Eq("group_id", idParam(groupID)).
		Order("id", ascending).
		ExecuteTo(&members)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}

	userIDs := store.DistinctIDs(len(members), func(i int) *int64 { return &members[i].UserID })
	names := r.userNames(userIDs)
	for i := range members {
		members[i].UserName = names[members[i].UserID]
	}
	return members, nil
}
