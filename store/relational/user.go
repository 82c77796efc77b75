package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

type userRepo struct{ *backend }

func (r userRepo) List(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if f.RoleID != nil {
		q = q.Where("role_id = ?", *f.RoleID)
	}
	if f.DepartmentID != nil {
		q = q.Where("department_id = ?", *f.DepartmentID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var users []models.User
	err := q.Order("username").
		Limit(store.NormalizeLimit(f.Limit)).
		Offset(f.Offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	r.annotateUsers(ctx, users)
	return users, nil
}

func (r userRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	batch := []models.User{user}
	r.annotateUsers(ctx, batch)
	return &batch[0], nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}

	batch := []models.User{user}
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

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
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

	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

// Delete hard-deletes a user. The last active admin can never be
// removed, not even by themselves; the check runs inside the delete
// transaction against current state.
func (r userRepo) Delete(ctx context.Context, actor models.Actor, id int64) error {
	if !actor.IsAdminRole() {
		return store.ErrPermissionDenied
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		isAdmin, err := isAdminUser(tx, &target)
		if err != nil {
			return err
		}
		if isAdmin {
			remaining, err := countOtherActiveAdmins(tx, target.ID)
			if err != nil {
				return err
			}
			if remaining == 0 {
				return store.ErrLastAdmin
			}
		}

		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		if errors.Is(err, store.ErrLastAdmin) {
			return store.ErrLastAdmin
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (r userRepo) TouchLastLogin(ctx context.Context, id int64) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Update("last_login", now).Error
	if err != nil {
		return fmt.Errorf("touch last login %d: %w", id, err)
	}
	return nil
}

// isAdminUser treats both the is_admin flag and the Admin role as
// admin-ness.
func isAdminUser(tx *gorm.DB, u *models.User) (bool, error) {
	if u.IsAdmin {
		return true, nil
	}
	if u.RoleID == nil {
		return false, nil
	}
	var role models.Role
	err := tx.First(&role, *u.RoleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role.Name == models.RoleAdmin, nil
}

func countOtherActiveAdmins(tx *gorm.DB, excludeID int64) (int64, error) {
	var adminRole models.Role
	var adminRoleID int64 = -1
	err := tx.First(&adminRole, "name = ?", models.RoleAdmin).Error
	if err == nil {
		adminRoleID = adminRole.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	var count int64
	err = tx.Model(&models.User{}).
		Where("id <> ? AND is_active = ?", excludeID, true).
		Where("is_admin = ? OR role_id = ?", true, adminRoleID).
		Count(&count).Error
	return count, err
}
