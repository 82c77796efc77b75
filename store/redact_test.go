package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadhub/models"
)

func TestMaskName(t *testing.T) {
	assert.Equal(t, "M.", MaskName("Mario"))
	assert.Equal(t, "M. R.", MaskName("Mario Rossi"))
	assert.Equal(t, "", MaskName(""))

	// Masking an already masked value changes nothing
	assert.Equal(t, "M. R.", MaskName(MaskName("Mario Rossi")))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "***@example.com", MaskEmail("m.rossi@example.com"))
	assert.Equal(t, "***@***", MaskEmail("not-an-email"))
	assert.Equal(t, "", MaskEmail(""))
	assert.Equal(t, "***@example.com", MaskEmail(MaskEmail("m.rossi@example.com")))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "***567", MaskPhone("3331234567"))
	assert.Equal(t, "***", MaskPhone("12"))
	assert.Equal(t, "", MaskPhone(""))
	assert.Equal(t, "***567", MaskPhone(MaskPhone("3331234567")))
}

func TestMaskCompany(t *testing.T) {
	assert.Equal(t, "Acm***", MaskCompany("Acme Corp"))
	assert.Equal(t, "***", MaskCompany("AB"))
	assert.Equal(t, "", MaskCompany(""))
	assert.Equal(t, "Acm***", MaskCompany(MaskCompany("Acme Corp")))
}

func TestMaskUsername(t *testing.T) {
	assert.Equal(t, "mr***", MaskUsername("mrossi"))
	assert.Equal(t, "***", MaskUsername("ab"))
	assert.Equal(t, "", MaskUsername(""))
}

func TestRedactLeadDoesNotMutateInput(t *testing.T) {
	lead := models.Lead{
		Name:      "Mario Rossi",
		FirstName: "Mario",
		LastName:  "Rossi",
		Email:     "m.rossi@example.com",
		Phone:     "3331234567",
		Company:   "Acme Corp",
		Position:  "CTO",
		Notes:     "met at the fair",
	}

	masked := RedactLead(lead)

	assert.Equal(t, "M. R.", masked.Name)
	assert.Equal(t, "M.", masked.FirstName)
	assert.Equal(t, "***@example.com", masked.Email)
	assert.Equal(t, "***567", masked.Phone)
	assert.Equal(t, "Acm***", masked.Company)
	assert.Equal(t, RedactedPlaceholder, masked.Position)
	assert.Equal(t, RedactedPlaceholder, masked.Notes)

	// Original untouched
	assert.Equal(t, "Mario Rossi", lead.Name)
	assert.Equal(t, "m.rossi@example.com", lead.Email)
}

func TestRedactLeadIdempotent(t *testing.T) {
	lead := models.Lead{
		Name:    "Mario Rossi",
		Email:   "m.rossi@example.com",
		Phone:   "3331234567",
		Company: "Acme Corp",
		Notes:   "met at the fair",
	}
	once := RedactLead(lead)
	twice := RedactLead(once)
	assert.Equal(t, once, twice)
}

func TestRedactTask(t *testing.T) {
	task := models.Task{
		Title:       "Call back",
		Description: "discuss pricing",
		LeadName:    "Mario Rossi",
		LeadPhone:   "3331234567",
	}

	masked := RedactTask(task)
	assert.Equal(t, "Call back", masked.Title)
	assert.Equal(t, RedactedPlaceholder, masked.Description)
	assert.Equal(t, "M. R.", masked.LeadName)
	assert.Equal(t, "***567", masked.LeadPhone)
}

func TestRedactUser(t *testing.T) {
	user := models.User{
		Username:  "mrossi",
		FirstName: "Mario",
		LastName:  "Rossi",
		Email:     "m.rossi@example.com",
		Phone:     "3331234567",
	}

	masked := RedactUser(user)
	assert.Equal(t, "mr***", masked.Username)
	assert.Equal(t, "M.", masked.FirstName)
	assert.Equal(t, "R.", masked.LastName)
	assert.Equal(t, "***@example.com", masked.Email)
	assert.Equal(t, "***567", masked.Phone)
}

func TestForRole(t *testing.T) {
	base := &Store{}

	assert.Same(t, base, base.ForRole(models.RoleAdmin))
	assert.Same(t, base, base.ForRole("Operator"))

	view := base.ForRole(models.RoleTester)
	assert.NotSame(t, base, view)
	assert.IsType(t, redactedLeadRepo{}, view.Leads)
	assert.IsType(t, redactedTaskRepo{}, view.Tasks)
	assert.IsType(t, redactedUserRepo{}, view.Users)
}
