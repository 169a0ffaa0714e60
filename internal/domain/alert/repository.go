package alert

import (
	"context"

	vo "github.com/aegis-support/aegis/internal/domain/alert/valueobjects"
)

type Repository interface {
	// CreateIfNoActive inserts the alert only when no active alert of
	// the same type exists for the same issue. Returns true when the
	// alert was created. The check and insert are atomic with respect
	// to concurrent callers; this is what upholds the dedup invariant.
	CreateIfNoActive(ctx context.Context, a *Alert) (bool, error)

	Update(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id uint) (*Alert, error)
	ListActive(ctx context.Context) ([]*Alert, error)
	ListByIssueID(ctx context.Context, issueID uint) ([]*Alert, error)
	CountActiveByIssueAndType(ctx context.Context, issueID uint, alertType vo.AlertType) (int64, error)
}
