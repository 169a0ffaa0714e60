package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aegis-support/aegis/internal/domain/alert"
	alertvo "github.com/aegis-support/aegis/internal/domain/alert/valueobjects"
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

// fakeAlertStore is an in-memory alert.Repository that upholds the same
// dedup invariant as the database-backed one: CreateIfNoActive is
// atomic and refuses a second non-resolved alert per (issue, type).
type fakeAlertStore struct {
	mu     sync.Mutex
	nextID uint
	alerts map[uint]*alert.Alert
}

func newFakeAlertStore() *fakeAlertStore {
	return &fakeAlertStore{alerts: make(map[uint]*alert.Alert)}
}

func (s *fakeAlertStore) CreateIfNoActive(ctx context.Context, a *alert.Alert) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.alerts {
		if existing.IssueID() == a.IssueID() && existing.Type() == a.Type() && !existing.Status().IsTerminal() {
			return false, nil
		}
	}

	s.nextID++
	if err := a.SetID(s.nextID); err != nil {
		return false, err
	}
	s.alerts[a.ID()] = a
	return true, nil
}

func (s *fakeAlertStore) Update(ctx context.Context, a *alert.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alerts[a.ID()]; !ok {
		return fmt.Errorf("alert %d not found", a.ID())
	}
	s.alerts[a.ID()] = a
	return nil
}

func (s *fakeAlertStore) GetByID(ctx context.Context, id uint) (*alert.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[id]
	if !ok {
		return nil, fmt.Errorf("alert %d not found", id)
	}
	return a, nil
}

func (s *fakeAlertStore) ListActive(ctx context.Context) ([]*alert.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*alert.Alert
	for _, a := range s.alerts {
		if !a.Status().IsTerminal() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAlertStore) ListByIssueID(ctx context.Context, issueID uint) ([]*alert.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*alert.Alert
	for _, a := range s.alerts {
		if a.IssueID() == issueID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAlertStore) CountActiveByIssueAndType(ctx context.Context, issueID uint, alertType alertvo.AlertType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, a := range s.alerts {
		if a.IssueID() == issueID && a.Type() == alertType && !a.Status().IsTerminal() {
			count++
		}
	}
	return count, nil
}

// byIssueAndType is a test helper to inspect the fake's contents.
func (s *fakeAlertStore) byIssueAndType(issueID uint, alertType alertvo.AlertType) []*alert.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*alert.Alert
	for _, a := range s.alerts {
		if a.IssueID() == issueID && a.Type() == alertType {
			out = append(out, a)
		}
	}
	return out
}

type mockLogger struct {
	InfowFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Named(name string) logger.Interface { return m }
