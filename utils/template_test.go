package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadhub/models"
)

func TestRenderTemplate(t *testing.T) {
	lead := &models.Lead{
		Name:      "Mario Rossi",
		FirstName: "Mario",
		LastName:  "Rossi",
		Email:     "m.rossi@example.com",
		Company:   "Acme Corp",
	}

	body := "Hi {{first_name}}, is {{company}} still hiring? Reach me at {{email}}."
	got := RenderTemplate(body, lead)
	assert.Equal(t, "Hi Mario, is Acme Corp still hiring? Reach me at m.rossi@example.com.", got)
}

func TestRenderTemplateNilLead(t *testing.T) {
	body := "Hi {{first_name}}"
	assert.Equal(t, body, RenderTemplate(body, nil))
}

func TestRenderTemplateUnknownPlaceholder(t *testing.T) {
	lead := &models.Lead{FirstName: "Mario"}
	assert.Equal(t, "{{budget}}", RenderTemplate("{{budget}}", lead))
}
