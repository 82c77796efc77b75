package models

import "gorm.io/gorm"

// SeedDefaults creates the default lookup rows on first run. Insertion
// order matters for task states: it is the progression order used by
// task advancement.
func SeedDefaults(db *gorm.DB) error {
	leadStates := []LeadState{
		{Lookup{Name: "New", Color: "#3498db"}},
		{Lookup{Name: "Contacted", Color: "#f39c12"}},
		{Lookup{Name: "Qualified", Color: "#9b59b6"}},
		{Lookup{Name: "Negotiation", Color: "#e67e22"}},
		{Lookup{Name: "Won", Color: "#2ecc71"}},
		{Lookup{Name: "Lost", Color: "#e74c3c"}},
	}
	for _, s := range leadStates {
		if err := db.FirstOrCreate(&s, "name = ?", s.Name).Error; err != nil {
			return err
		}
	}

	leadPriorities := []LeadPriority{
		{Lookup{Name: "Low", Color: "#95a5a6"}},
		{Lookup{Name: "Medium", Color: "#f1c40f"}},
		{Lookup{Name: "High", Color: "#e74c3c"}},
	}
	for _, p := range leadPriorities {
		if err := db.FirstOrCreate(&p, "name = ?", p.Name).Error; err != nil {
			return err
		}
	}

	leadCategories := []LeadCategory{
		{Lookup{Name: "Private"}},
		{Lookup{Name: "Company"}},
		{Lookup{Name: "Partner"}},
	}
	for _, c := range leadCategories {
		if err := db.FirstOrCreate(&c, "name = ?", c.Name).Error; err != nil {
			return err
		}
	}

	leadSources := []LeadSource{
		{Lookup{Name: "Website"}},
		{Lookup{Name: "Referral"}},
		{Lookup{Name: "Social"}},
		{Lookup{Name: "Cold Call"}},
		{Lookup{Name: "Import"}},
	}
	for _, s := range leadSources {
		if err := db.FirstOrCreate(&s, "name = ?", s.Name).Error; err != nil {
			return err
		}
	}

	taskStates := []TaskState{
		{Lookup{Name: "To Do", Color: "#3498db"}},
		{Lookup{Name: "In Progress", Color: "#f39c12"}},
		{Lookup{Name: "Done", Color: "#2ecc71"}},
	}
	for _, s := range taskStates {
		if err := db.FirstOrCreate(&s, "name = ?", s.Name).Error; err != nil {
			return err
		}
	}

	taskTypes := []TaskType{
		{Lookup{Name: "Call"}},
		{Lookup{Name: "Email"}},
		{Lookup{Name: "Meeting"}},
		{Lookup{Name: "Follow-up"}},
	}
	for _, t := range taskTypes {
		if err := db.FirstOrCreate(&t, "name = ?", t.Name).Error; err != nil {
			return err
		}
	}

	roles := []Role{
		{Lookup{Name: RoleAdmin, Description: "Full access, user administration"}},
		{Lookup{Name: "Manager", Description: "Lead and task management"}},
		{Lookup{Name: "Operator", Description: "Day-to-day lead handling"}},
		{Lookup{Name: RoleTester, Description: "Restricted view with masked contact data"}},
	}
	for _, r := range roles {
		if err := db.FirstOrCreate(&r, "name = ?", r.Name).Error; err != nil {
			return err
		}
	}

	departments := []Department{
		{Lookup{Name: "Sales"}},
		{Lookup{Name: "Support"}},
		{Lookup{Name: "Management"}},
	}
	for _, d := range departments {
		if err := db.FirstOrCreate(&d, "name = ?", d.Name).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedAdminUser creates the initial admin account if no user exists
// yet. The password hash is computed by the caller so this package
// stays free of crypto dependencies.
func SeedAdminUser(db *gorm.DB, passwordHash string) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminRole Role
	if err := db.First(&adminRole, "name = ?", RoleAdmin).Error; err != nil {
		return err
	}

	admin := User{
		Username:     "admin",
		Email:        "admin@localhost",
		FirstName:    "System",
		LastName:     "Admin",
		PasswordHash: passwordHash,
		RoleID:       &adminRole.ID,
		IsActive:     true,
		IsAdmin:      true,
	}
	return db.Create(&admin).Error
}
