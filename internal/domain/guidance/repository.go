package guidance

import (
	"context"

	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"

	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
)

// TemplateRepository persists response templates.
type TemplateRepository interface {
	Save(ctx context.Context, template *ResponseTemplate) error
	Update(ctx context.Context, template *ResponseTemplate) error
	GetByID(ctx context.Context, id uint) (*ResponseTemplate, error)

	// ListActive returns active templates filtered by category and
	// optionally severity (nil matches any), best performers first.
	ListActive(ctx context.Context, category vo.TemplateCategory, severity *issuevo.Severity, limit int) ([]*ResponseTemplate, error)
}

// SummaryRepository persists conversation summaries.
type SummaryRepository interface {
	Save(ctx context.Context, summary *Summary) error

	// GetLatestByIssueID returns the most recent summary for the issue,
	// or a not-found error when none exists.
	GetLatestByIssueID(ctx context.Context, issueID uint) (*Summary, error)
}
