package supabase

import (
	"context"
	"fmt"
	"strings"

	"leadhub/models"
	"leadhub/store"
)

type leadRepo struct{ *backend }

// sanitizeSearch strips characters that would break the or-filter
// syntax of the REST query string.
func sanitizeSearch(s string) string {
	return strings.NewReplacer(",", " ", "(", " ", ")", " ").Replace(s)
}

func (r leadRepo) List(ctx context.Context, f store.LeadFilter) ([]models.Lead, error) {
	q := r.client.From("leads").Select("*", "", false)
	if f.StateID != nil {
		q = q.Eq("state_id", idParam(*f.StateID))
	}
	if f.CategoryID != nil {
		q = q.Eq("category_id", idParam(*f.CategoryID))
	}
	if f.AssignedTo != nil {
		q = q.Eq("assigned_to", idParam(*f.AssignedTo))
	}
	if f.GroupID != nil {
		q = q.Eq("group_id", idParam(*f.GroupID))
	}
	if f.Search != "" {
		s := sanitizeSearch(f.Search)
		q = q.Or(fmt.Sprintf("name.ilike.*%s*,email.ilike.*%s*,company.ilike.*%s*", s, s, s), "")
	}

	limit := store.NormalizeLimit(f.Limit)
	var leads []models.Lead
	_, err := q.Order("created_at", descending).
		Range(f.Offset, f.Offset+limit-1, "").
		ExecuteTo(&leads)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	for i := range leads {
		leads[i].Normalize()
	}
	r.annotateLeads(ctx, leads)
	return leads, nil
}

func (r leadRepo) Get(ctx context.Context, id int64) (*models.Lead, error) {
	var rows []models.Lead
	_, err := r.client.From("leads").
		Select("*", "", false).
		Eq("id", idParam(id)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get lead %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	rows[0].Normalize()
	r.annotateLeads(ctx, rows[:1])
	return &rows[0], nil
}

func (r leadRepo) Create(ctx context.Context, lead *models.Lead) (int64, error) {
	lead.Normalize()
	if lead.Name == "" {
		return 0, fmt.Errorf("%w: lead name is required", store.ErrValidation)
	}
	if lead.StateID == nil {
		return 0, fmt.Errorf("%w: lead state is required", store.ErrValidation)
	}

	// The remote table stores the combined name only.
	payload := map[string]any{
		"name":                lead.Name,
		"email":               lead.Email,
		"phone":               lead.Phone,
		"company":             lead.Company,
		"position":            lead.Position,
		"state_id":            lead.StateID,
		"category_id":         lead.CategoryID,
		"priority_id":         lead.PriorityID,
		"source_id":           lead.SourceID,
		"assigned_to":         lead.AssignedTo,
		"group_id":            lead.GroupID,
		"budget":              lead.Budget,
		"expected_close_date": lead.ExpectedCloseDate,
		"notes":               lead.Notes,
		"created_by":          lead.CreatedBy,
	}

	var rows []models.Lead
	_, err := r.client.From("leads").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("create lead: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("create lead: no row returned")
	}
	lead.ID = rows[0].ID
	return lead.ID, nil
}

func (r leadRepo) Update(ctx context.Context, id int64, p store.LeadPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}

	// Name parts are rewritten into the combined name column; the
	// untouched half is read back from the current row first.
	if p.FirstName != nil || p.LastName != nil {
		current, err := r.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("update lead %d: %w", id, err)
		}
		if current == nil {
			return nil
		}
		first, last := current.FirstName, current.LastName
		if p.FirstName != nil {
			first = *p.FirstName
		}
		if p.LastName != nil {
			last = *p.LastName
		}
		fields["name"] = models.JoinName(first, last)
		delete(fields, "first_name")
		delete(fields, "last_name")
	}

	_, _, err := r.client.From("leads").
		Update(fields, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("update lead %d: %w", id, err)
	}
	return nil
}

func (r leadRepo) Delete(ctx context.Context, id int64) error {
	_, _, err := r.client.From("leads").
		Delete("minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("delete lead %d: %w", id, err)
	}
	return nil
}
