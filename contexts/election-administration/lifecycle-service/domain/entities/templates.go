package entities

// PositionTemplate pre-fills a new election with a known officer slate.
// Order follows the listing; every templated position starts single-select.
type PositionTemplate struct {
	TemplateID string
	Name       string
	Positions  []string
}

var positionTemplates = []PositionTemplate{
	{
		TemplateID: "none",
		Name:       "None",
		Positions:  nil,
	},
	{
		TemplateID: "ssg",
		Name:       "Supreme Student Government",
		Positions: []string{
			"President",
			"Vice President",
			"Secretary",
			"Treasurer",
			"Auditor",
			"Public Information Officer",
			"Sergeant at Arms",
		},
	},
	{
		TemplateID: "student-council",
		Name:       "Student Council",
		Positions: []string{
			"President",
			"Vice President for Internal Affairs",
			"Vice President for External Affairs",
			"Secretary",
			"Assistant Secretary",
			"Treasurer",
			"Auditor",
			"Business Manager",
		},
	},
	{
		TemplateID: "homeowners",
		Name:       "Homeowners Association",
		Positions: []string{
			"President",
			"Vice President",
			"Secretary",
			"Treasurer",
			"Auditor",
			"Board Member",
		},
	},
}

// ListPositionTemplates returns the built-in templates, "none" first.
func ListPositionTemplates() []PositionTemplate {
	items := make([]PositionTemplate, len(positionTemplates))
	copy(items, positionTemplates)
	return items
}

// FindPositionTemplate resolves a template id; unknown ids and the empty
// string behave like "none".
func FindPositionTemplate(templateID string) PositionTemplate {
	for _, template := range positionTemplates {
		if template.TemplateID == templateID {
			return template
		}
	}
	return positionTemplates[0]
}
