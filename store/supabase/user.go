package supabase

import (
	"context"
	"fmt"
	"time"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type userRepo struct{ *backend }

// userRow re-exposes the password hash, which the model hides from
// serialization; the login path needs it back from the store.
type userRow struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func (row *userRow) model() models.User {
	u := row.User
	u.PasswordHash = row.PasswordHash
	return u
}

func (r userRepo) List(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	q := r.client.From("users").Select("*", "", false)
	if f.RoleID != nil {
		q = q.Eq("role_id", idParam(*f.RoleID))
	}
	if f.DepartmentID != nil {
		q = q.Eq("department_id", idParam(*f.DepartmentID))
	}
	if f.ActiveOnly {
		q = q.Eq("is_active", "true")
	}

	limit := store.NormalizeLimit(f.Limit)
	var rows []userRow
	_, err := q.Order("username", ascending).
		Range(f.Offset, f.Offset+limit-1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]models.User, len(rows))
	for i := range rows {
		users[i] = rows[i].model()
	}
	r.annotateUsers(ctx, users)
	return users, nil
}

func (r userRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "id", idParam(id))
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r userRepo) getBy(ctx context.Context, column, value string) (*models.User, error) {
	var rows []userRow
	_, err := r.client.From("users").
		Select("*", "", false).
		Eq(column, value).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get user %s=%s: %w", column, value, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	batch := []models.User{rows[0].model()}
	r.annotateUsers(ctx, batch)
	return &batch[0], nil
}

func (r userRepo) Create(ctx context.Context, actor models.Actor, user *models.User, plainPassword string) (int64, error) {
	if !actor.IsAdminRole() {
		return 0, store.ErrPermissionDenied
	}
	if user.Username == "" {
		return 0, fmt.Errorf("%w: username is required", store.ErrValidation)
	}

	// Hash a plaintext password at write time; never persist it in
	// clear.
	if user.PasswordHash == "" {
		if plainPassword == "" {
			return 0, fmt.Errorf("%w: password is required", store.ErrValidation)
		}
		hash, err := utils.HashPassword(plainPassword)
		if err != nil {
			return 0, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	payload := map[string]any{
		"username":      user.Username,
		"email":         user.Email,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"phone":         user.Phone,
		"password_hash": user.PasswordHash,
		"role_id":       user.RoleID,
		"department_id": user.DepartmentID,
		"is_active":     user.IsActive,
		"is_admin":      user.IsAdmin,
	}

	var rows []userRow
	_, err := r.client.From("users").
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("create user: no row returned")
	}
	user.ID = rows[0].ID
	return user.ID, nil
}

func (r userRepo) Update(ctx context.Context, actor models.Actor, id int64, p store.UserPatch) error {
	if !actor.IsAdminRole() {
		return store.ErrPermissionDenied
	}

	fields := p.Fields()
	if p.Password != nil && *p.Password != "" {
		hash, err := utils.HashPassword(*p.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = hash
	}
	if len(fields) == 0 {
		return nil
	}

	_, _, err := r.client.From("users").
		Update(fields, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

// Delete hard-deletes a user. The last active admin can never be
// removed, not even by themselves. The check and the delete are
// separate REST calls; without transactions this is a best-effort
// guard, not an atomic one.
func (r userRepo) Delete(ctx context.Context, actor models.Actor, id int64) error {
	if !actor.IsAdminRole() {
		return store.ErrPermissionDenied
	}

	target, err := r.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if target == nil {
		return nil
	}

	isAdmin, err := r.isAdminUser(target)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if isAdmin {
		remaining, err := r.countOtherActiveAdmins(id)
		if err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		if remaining == 0 {
			return store.ErrLastAdmin
		}
	}

	_, _, err = r.client.From("users").
		Delete("minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (r userRepo) TouchLastLogin(ctx context.Context, id int64) error {
	_, _, err := r.client.From("users").
		Update(map[string]any{"last_login": time.Now()}, "minimal", "").
		Eq("id", idParam(id)).
		Execute()
	if err != nil {
		return fmt.Errorf("touch last login %d: %w", id, err)
	}
	return nil
}

// isAdminUser treats both the is_admin flag and the Admin role as
// admin-ness.
func (r userRepo) isAdminUser(u *models.User) (bool, error) {
	if u.IsAdmin {
		return true, nil
	}
	if u.RoleID == nil {
		return false, nil
	}
	var roles []models.Lookup
	_, err := r.client.From(models.TableRoles).
		Select("id,name", "", false).
		Eq("id", idParam(*u.RoleID)).
		ExecuteTo(&roles)
	if err != nil {
		return false, err
	}
	return len(roles) > 0 && roles[0].Name == models.RoleAdmin, nil
}

func (r userRepo) countOtherActiveAdmins(excludeID int64) (int, error) {
	var adminRoleID int64 = -1
	var roles []models.Lookup
	_, err := r.client.From(models.TableRoles).
		Select("id,name", "", false).
		Eq("name", models.RoleAdmin).
		ExecuteTo(&roles)
	if err != nil {
		return 0, err
	}
	if len(roles) > 0 {
		adminRoleID = roles[0].ID
	}

	var rows []userRow
	_, err = r.client.From("users").
		Select("id", "", false).
		Neq("id", idParam(excludeID)).
		Eq("is_active", "true").
		Or(fmt.Sprintf("is_admin.eq.true,role_id.eq.%d", adminRoleID), "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
