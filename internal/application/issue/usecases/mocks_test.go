package usecases

import (
	"context"
	"time"

	"github.com/aegis-support/aegis/internal/domain/issue"
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

type mockLogger struct {
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

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
