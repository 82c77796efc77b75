package utils

import (
	"strings"

	"leadhub/models"
)

// RenderTemplate substitutes lead placeholders in a template body.
// Supported placeholders: {{name}}, {{first_name}}, {{last_name}},
// {{email}}, {{phone}}, {{company}}, {{position}}.
func RenderTemplate(body string, lead *models.Lead) string {
	if lead == nil {
		return body
	}
	replacer := strings.NewReplacer(
		"{{name}}", lead.Name,
		"{{first_name}}", lead.FirstName,
		"{{last_name}}", lead.LastName,
		"{{email}}", lead.Email,
		"{{phone}}", lead.Phone,
		"{{company}}", lead.Company,
		"{{position}}", lead.Position,
	)
	return replacer.Replace(body)
}
