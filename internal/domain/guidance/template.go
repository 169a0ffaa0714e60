package guidance

import (
	"fmt"
	"time"

	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"

	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
)

// ResponseTemplate is a reusable support reply with {{variable}}
// placeholders. Templates accumulate usage counts and an effectiveness
// score so the best performers rank first when alternatives are offered.
type ResponseTemplate struct {
	id                 uint
	name               string
	category           vo.TemplateCategory
	severity           *issuevo.Severity
	content            string
	variables          []string
	usageCount         int
	effectivenessScore float64
	isActive           bool
	createdAt          time.Time
	updatedAt          time.Time
}

func NewResponseTemplate(
	name string,
	category vo.TemplateCategory,
	severity *issuevo.Severity,
	content string,
	variables []string,
) (*ResponseTemplate, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("template name is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid template category")
	}
	if severity != nil && !severity.IsValid() {
		return nil, fmt.Errorf("invalid severity")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("template content is required")
	}

	now := time.Now().UTC()
	return &ResponseTemplate{
		name:      name,
		category:  category,
		severity:  severity,
		content:   content,
		variables: variables,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructResponseTemplate(
	id uint,
	name string,
	category vo.TemplateCategory,
	severity *issuevo.Severity,
	content string,
	variables []string,
	usageCount int,
	effectivenessScore float64,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*ResponseTemplate, error) {
	if id == 0 {
		return nil, fmt.Errorf("template ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid template category")
	}

	return &ResponseTemplate{
		id:                 id,
		name:               name,
		category:           category,
		severity:           severity,
		content:            content,
		variables:          variables,
		usageCount:         usageCount,
		effectivenessScore: effectivenessScore,
		isActive:           isActive,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (t *ResponseTemplate) ID() uint                      { return t.id }
func (t *ResponseTemplate) Name() string                  { return t.name }
func (t *ResponseTemplate) Category() vo.TemplateCategory { return t.category }
func (t *ResponseTemplate) Severity() *issuevo.Severity   { return t.severity }
func (t *ResponseTemplate) Content() string               { return t.content }
func (t *ResponseTemplate) UsageCount() int               { return t.usageCount }
func (t *ResponseTemplate) EffectivenessScore() float64   { return t.effectivenessScore }
func (t *ResponseTemplate) IsActive() bool                { return t.isActive }
func (t *ResponseTemplate) CreatedAt() time.Time          { return t.createdAt }
func (t *ResponseTemplate) UpdatedAt() time.Time          { return t.updatedAt }

func (t *ResponseTemplate) Variables() []string {
	out := make([]string, len(t.variables))
	copy(out, t.variables)
	return out
}

func (t *ResponseTemplate) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("template ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("template ID cannot be zero")
	}
	t.id = id
	return nil
}

// RecordUsage bumps the usage counter when an agent sends the template.
func (t *ResponseTemplate) RecordUsage() {
	t.usageCount++
	t.updatedAt = time.Now().UTC()
}

// RateEffectiveness folds a new rating in [0, 1] into the running score
// as a moving average.
func (t *ResponseTemplate) RateEffectiveness(rating float64) error {
	if rating < 0 || rating > 1 {
		return fmt.Errorf("effectiveness rating must be in [0, 1], got %f", rating)
	}
	if t.effectivenessScore == 0 {
		t.effectivenessScore = rating
	} else {
		t.effectivenessScore = (t.effectivenessScore + rating) / 2
	}
	t.updatedAt = time.Now().UTC()
	return nil
}

func (t *ResponseTemplate) Deactivate() {
	t.isActive = false
	t.updatedAt = time.Now().UTC()
}
