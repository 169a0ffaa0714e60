package issue

import (
	"context"
	"time"

	vo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
)

// CustomerStats is the rollup computed over one customer's issues.
type CustomerStats struct {
	TotalIssues        int64
	ResolvedIssues     int64
	OpenIssues         int64
	CriticalIssues     int64
	HighIssues         int64
	AvgResolutionHours float64
	LastIssueAt        *time.Time
	IssuesLast30Days   int64
}

// CustomerEscalation reports a customer with enough concurrent
// high-severity issues to warrant an escalation alert. NewestIssueID is
// the issue the alert attaches to.
type CustomerEscalation struct {
	CustomerID    uint
	IssueCount    int64
	NewestIssueID uint
}

type IssueFilter struct {
	CustomerID *uint
	Status     *vo.IssueStatus
	Severity   *vo.Severity
	Category   *vo.Category
	Page       int
	PageSize   int
}

type Repository interface {
	Save(ctx context.Context, iss *Issue) error
	Update(ctx context.Context, iss *Issue) error
	GetByID(ctx context.Context, id uint) (*Issue, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]*Issue, int64, error)

	// ListActive returns issues the monitor sweeps over: everything in
	// a non-terminal status.
	ListActive(ctx context.Context) ([]*Issue, error)

	// ListAfterID pages through all issues by ascending id. Used to
	// rebuild the similarity index on cold start.
	ListAfterID(ctx context.Context, afterID uint, limit int) ([]*Issue, error)

	CustomerStats(ctx context.Context, customerID uint) (*CustomerStats, error)

	// CustomersInEscalation returns customers holding at least minCount
	// active High/Critical issues created since the given instant.
	CustomersInEscalation(ctx context.Context, since time.Time, minCount int) ([]CustomerEscalation, error)
}

type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	ListByIssueID(ctx context.Context, issueID uint) ([]*Comment, error)
}
