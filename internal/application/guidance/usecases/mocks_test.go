package usecases

import (
	"context"
	"time"

	"github.com/aegis-support/aegis/internal/domain/customer"
	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	"github.com/aegis-support/aegis/internal/domain/issue"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type mockIssueRepository struct {
	SaveFunc                  func(ctx context.Context, iss *issue.Issue) error
	UpdateFunc                func(ctx context.Context, iss *issue.Issue) error
	GetByIDFunc               func(ctx context.Context, id uint) (*issue.Issue, error)
	GetByIDsFunc              func(ctx context.Context, ids []uint) ([]*issue.Issue, error)
	ListFunc                  func(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error)
	ListActiveFunc            func(ctx context.Context) ([]*issue.Issue, error)
	ListAfterIDFunc           func(ctx context.Context, afterID uint, limit int) ([]*issue.Issue, error)
	CustomerStatsFunc         func(ctx context.Context, customerID uint) (*issue.CustomerStats, error)
	CustomersInEscalationFunc func(ctx context.Context, since time.Time, minCount int) ([]issue.CustomerEscalation, error)
}

func (m *mockIssueRepository) Save(ctx context.Context, iss *issue.Issue) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, iss)
	}
	return nil
}

func (m *mockIssueRepository) Update(ctx context.Context, iss *issue.Issue) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, iss)
	}
	return nil
}

func (m *mockIssueRepository) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockIssueRepository) GetByIDs(ctx context.Context, ids []uint) ([]*issue.Issue, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockIssueRepository) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockIssueRepository) ListActive(ctx context.Context) ([]*issue.Issue, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockIssueRepository) ListAfterID(ctx context.Context, afterID uint, limit int) ([]*issue.Issue, error) {
	if m.ListAfterIDFunc != nil {
		return m.ListAfterIDFunc(ctx, afterID, limit)
	}
	return nil, nil
}

func (m *mockIssueRepository) CustomerStats(ctx context.Context, customerID uint) (*issue.CustomerStats, error) {
	if m.CustomerStatsFunc != nil {
		return m.CustomerStatsFunc(ctx, customerID)
	}
	return &issue.CustomerStats{}, nil
}

func (m *mockIssueRepository) CustomersInEscalation(ctx context.Context, since time.Time, minCount int) ([]issue.CustomerEscalation, error) {
	if m.CustomersInEscalationFunc != nil {
		return m.CustomersInEscalationFunc(ctx, since, minCount)
	}
	return nil, nil
}

type mockCommentRepository struct {
	SaveFunc          func(ctx context.Context, comment *issue.Comment) error
	ListByIssueIDFunc func(ctx context.Context, issueID uint) ([]*issue.Comment, error)
}

func (m *mockCommentRepository) Save(ctx context.Context, comment *issue.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) ListByIssueID(ctx context.Context, issueID uint) ([]*issue.Comment, error) {
	if m.ListByIssueIDFunc != nil {
		return m.ListByIssueIDFunc(ctx, issueID)
	}
	return nil, nil
}

type mockCustomerRepository struct {
	SaveFunc       func(ctx context.Context, c *customer.Customer) error
	GetByIDFunc    func(ctx context.Context, id uint) (*customer.Customer, error)
	GetByEmailFunc func(ctx context.Context, email string) (*customer.Customer, error)
}

func (m *mockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

type mockTemplateRepository struct {
	SaveFunc       func(ctx context.Context, template *guidance.ResponseTemplate) error
	UpdateFunc     func(ctx context.Context, template *guidance.ResponseTemplate) error
	GetByIDFunc    func(ctx context.Context, id uint) (*guidance.ResponseTemplate, error)
	ListActiveFunc func(ctx context.Context, category vo.TemplateCategory, severity *issuevo.Severity, limit int) ([]*guidance.ResponseTemplate, error)
}

func (m *mockTemplateRepository) Save(ctx context.Context, template *guidance.ResponseTemplate) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, template)
	}
	return nil
}

func (m *mockTemplateRepository) Update(ctx context.Context, template *guidance.ResponseTemplate) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, template)
	}
	return nil
}

func (m *mockTemplateRepository) GetByID(ctx context.Context, id uint) (*guidance.ResponseTemplate, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTemplateRepository) ListActive(ctx context.Context, category vo.TemplateCategory, severity *issuevo.Severity, limit int) ([]*guidance.ResponseTemplate, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, category, severity, limit)
	}
	return nil, nil
}

type mockSummaryRepository struct {
	SaveFunc               func(ctx context.Context, summary *guidance.Summary) error
	GetLatestByIssueIDFunc func(ctx context.Context, issueID uint) (*guidance.Summary, error)
}

func (m *mockSummaryRepository) Save(ctx context.Context, summary *guidance.Summary) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, summary)
	}
	return nil
}

func (m *mockSummaryRepository) GetLatestByIssueID(ctx context.Context, issueID uint) (*guidance.Summary, error) {
	if m.GetLatestByIssueIDFunc != nil {
		return m.GetLatestByIssueIDFunc(ctx, issueID)
	}
	return nil, nil
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", nil
}

type mockLogger struct {
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Named(name string) logger.Interface { return m }
