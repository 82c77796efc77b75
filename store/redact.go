package store

import (
	"context"
	"strings"

	"leadhub/models"
)

// RedactedPlaceholder replaces free-text fields (notes, position) for
// restricted viewers.
const RedactedPlaceholder = "[restricted]"

// MaskName reduces a name to its initials: "Mario" -> "M.",
// "Mario Rossi" -> "M. R.". Masking is idempotent.
func MaskName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		r := []rune(f)
		parts = append(parts, string(r[0])+".")
	}
	return strings.Join(parts, " ")
}

// MaskEmail hides the local part and keeps the domain:
// "m.rossi@x.com" -> "***@x.com". Without an "@" the whole value
// becomes "***@***".
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "***@***"
	}
	return "***@" + email[at+1:]
}

// MaskPhone keeps only the last 3 characters: "3331234567" ->
// "***567".
func MaskPhone(phone string) string {
	if phone == "" {
		return ""
	}
	if len(phone) <= 3 {
		return "***"
	}
	return "***" + phone[len(phone)-3:]
}

// MaskCompany keeps the first 3 characters: "Acme Corp" -> "Acm***".
// Shorter values are fully masked.
func MaskCompany(company string) string {
	if company == "" {
		return ""
	}
	if len(company) <= 3 {
		return "***"
	}
	return company[:3] + "***"
}

// MaskUsername keeps the first 2 characters: "mrossi" -> "mr***".
func MaskUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}

func maskText(s string) string {
	if s == "" {
		return ""
	}
	return RedactedPlaceholder
}

// RedactLead returns a masked copy of the lead. The input is never
// mutated.
func RedactLead(l models.Lead) models.Lead {
	l.FirstName = MaskName(l.FirstName)
	l.LastName = MaskName(l.LastName)
	l.Name = MaskName(l.Name)
	l.Email = MaskEmail(l.Email)
	l.Phone = MaskPhone(l.Phone)
	l.Company = MaskCompany(l.Company)
	l.Position = maskText(l.Position)
	l.Notes = maskText(l.Notes)
	l.AssignedToName = MaskName(l.AssignedToName)
	return l
}

// RedactLeads masks a batch of leads, returning a new slice.
func RedactLeads(leads []models.Lead) []models.Lead {
	out := make([]models.Lead, len(leads))
	for i, l := range leads {
		out[i] = RedactLead(l)
	}
	return out
}

// RedactTask masks the lead contact data a task denormalizes for
// display, plus its free-text description.
func RedactTask(t models.Task) models.Task {
	t.Description = maskText(t.Description)
	t.LeadName = MaskName(t.LeadName)
	t.LeadPhone = MaskPhone(t.LeadPhone)
	t.AssignedToName = MaskName(t.AssignedToName)
	return t
}

// RedactTasks masks a batch of tasks, returning a new slice.
func RedactTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = RedactTask(t)
	}
	return out
}

// RedactUser masks a user's identifying fields.
func RedactUser(u models.User) models.User {
	u.Username = MaskUsername(u.Username)
	u.FirstName = MaskName(u.FirstName)
	u.LastName = MaskName(u.LastName)
	u.Email = MaskEmail(u.Email)
	u.Phone = MaskPhone(u.Phone)
	return u
}

// RedactUsers masks a batch of users, returning a new slice.
func RedactUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = RedactUser(u)
	}
	return out
}

// redactedLeadRepo wraps a LeadRepository so every read comes back
// masked. Writes pass through untouched.
type redactedLeadRepo struct {
	inner LeadRepository
}

func (r redactedLeadRepo) List(ctx context.Context, f LeadFilter) ([]models.Lead, error) {
	leads, err := r.inner.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return RedactLeads(leads), nil
}

func (r redactedLeadRepo) Get(ctx context.Context, id int64) (*models.Lead, error) {
	lead, err := r.inner.Get(ctx, id)
	if err != nil || lead == nil {
		return lead, err
	}
	masked := RedactLead(*lead)
	return &masked, nil
}

func (r redactedLeadRepo) Create(ctx context.Context, lead *models.Lead) (int64, error) {
	return r.inner.Create(ctx, lead)
}

func (r redactedLeadRepo) Update(ctx context.Context, id int64, p LeadPatch) error {
	return r.inner.Update(ctx, id, p)
}

func (r redactedLeadRepo) Delete(ctx context.Context, id int64) error {
	return r.inner.Delete(ctx, id)
}

type redactedTaskRepo struct {
	inner TaskRepository
}

func (r redactedTaskRepo) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	tasks, err := r.inner.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return RedactTasks(tasks), nil
}

func (r redactedTaskRepo) Get(ctx context.Context, id int64) (*models.Task, error) {
	task, err := r.inner.Get(ctx, id)
	if err != nil || task == nil {
		return task, err
	}
	masked := RedactTask(*task)
	return &masked, nil
}

func (r redactedTaskRepo) Create(ctx context.Context, task *models.Task) (int64, error) {
	return r.inner.Create(ctx, task)
}

func (r redactedTaskRepo) Update(ctx context.Context, id int64, p TaskPatch) error {
	return r.inner.Update(ctx, id, p)
}

func (r redactedTaskRepo) Delete(ctx context.Context, id int64) error {
	return r.inner.Delete(ctx, id)
}

func (r redactedTaskRepo) Advance(ctx context.Context, id int64) (*models.AdvanceResult, error) {
	return r.inner.Advance(ctx, id)
}

type redactedUserRepo struct {
	inner UserRepository
}

func (r redactedUserRepo) List(ctx context.Context, f UserFilter) ([]models.User, error) {
	users, err := r.inner.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return RedactUsers(users), nil
}

func (r redactedUserRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := r.inner.Get(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	masked := RedactUser(*user)
	return &masked, nil
}

func (r redactedUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	// Login needs the real record; redaction is a display concern.
	return r.inner.GetByUsername(ctx, username)
}

func (r redactedUserRepo) Create(ctx context.Context, actor models.Actor, user *models.User, plainPassword string) (int64, error) {
	return r.inner.Create(ctx, actor, user, plainPassword)
}

func (r redactedUserRepo) Update(ctx context.Context, actor models.Actor, id int64, p UserPatch) error {
	return r.inner.Update(ctx, actor, id, p)
}

func (r redactedUserRepo) Delete(ctx context.Context, actor models.Actor, id int64) error {
	return r.inner.Delete(ctx, actor, id)
}

func (r redactedUserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	return r.inner.TouchLastLogin(ctx, id)
}
