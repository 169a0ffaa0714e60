package valueobjects

import "fmt"

// TemplateCategory classifies a response template by the conversational
// moment it serves.
type TemplateCategory string

const (
	CategoryInitialResponse TemplateCategory = "initial_response"
	CategoryStatusUpdate    TemplateCategory = "status_update"
	CategoryEscalation      TemplateCategory = "escalation"
	CategoryResolution      TemplateCategory = "resolution"
	CategoryClarification   TemplateCategory = "clarification"
)

var validTemplateCategories = map[TemplateCategory]bool{
	CategoryInitialResponse: true,
	CategoryStatusUpdate:    true,
	CategoryEscalation:      true,
	CategoryResolution:      true,
	CategoryClarification:   true,
}

func (c TemplateCategory) String() string {
	return string(c)
}

func (c TemplateCategory) IsValid() bool {
	return validTemplateCategories[c]
}

// Tone returns the writing tone the category calls for, fed into the
// generation prompt.
func (c TemplateCategory) Tone() string {
	switch c {
	case CategoryInitialResponse:
		return "professional, empathetic, reassuring"
	case CategoryStatusUpdate:
		return "informative, transparent, professional"
	case CategoryEscalation:
		return "urgent, professional, apologetic"
	case CategoryResolution:
		return "positive, helpful, professional"
	case CategoryClarification:
		return "helpful, specific, professional"
	default:
		return "professional"
	}
}

func NewTemplateCategory(s string) (TemplateCategory, error) {
	c := TemplateCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid template category: %s", s)
	}
	return c, nil
}
