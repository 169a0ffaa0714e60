package issue

import (
	"fmt"
	"time"

	vo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
)

// Issue is the aggregate root for a customer support issue. All state
// changes go through methods so the resolved-timestamp invariant holds:
// resolvedAt is set if and only if the status is resolved or closed.
type Issue struct {
	id              uint
	customerID      uint
	title           string
	description     string
	category        vo.Category
	severity        vo.Severity
	status          vo.IssueStatus
	productArea     string
	priority        int
	statusChangedAt time.Time
	resolvedAt      *time.Time
	createdAt       time.Time
	updatedAt       time.Time
	comments        []*Comment
}

func NewIssue(
	customerID uint,
	title string,
	description string,
	category vo.Category,
	productArea string,
) (*Issue, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 10000 {
		return nil, fmt.Errorf("description exceeds maximum length of 10000 characters")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}

	now := time.Now().UTC()
	return &Issue{
		customerID:      customerID,
		title:           title,
		description:     description,
		category:        category,
		severity:        vo.SeverityNormal,
		status:          vo.StatusOpen,
		productArea:     productArea,
		statusChangedAt: now,
		createdAt:       now,
		updatedAt:       now,
		comments:        []*Comment{},
	}, nil
}

func ReconstructIssue(
	id uint,
	customerID uint,
	title string,
	description string,
	category vo.Category,
	severity vo.Severity,
	status vo.IssueStatus,
	productArea string,
	priority int,
	statusChangedAt time.Time,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Issue, error) {
	if id == 0 {
		return nil, fmt.Errorf("issue ID cannot be zero")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !severity.IsValid() {
		return nil, fmt.Errorf("invalid severity")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if status.IsTerminal() && resolvedAt == nil {
		return nil, fmt.Errorf("terminal issue must carry a resolved timestamp")
	}
	if !status.IsTerminal() && resolvedAt != nil {
		return nil, fmt.Errorf("active issue cannot carry a resolved timestamp")
	}

	return &Issue{
		id:              id,
		customerID:      customerID,
		title:           title,
		description:     description,
		category:        category,
		severity:        severity,
		status:          status,
		productArea:     productArea,
		priority:        priority,
		statusChangedAt: statusChangedAt,
		resolvedAt:      resolvedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		comments:        []*Comment{},
	}, nil
}

func (i *Issue) ID() uint                   { return i.id }
func (i *Issue) CustomerID() uint           { return i.customerID }
func (i *Issue) Title() string              { return i.title }
func (i *Issue) Description() string        { return i.description }
func (i *Issue) Category() vo.Category      { return i.category }
func (i *Issue) Severity() vo.Severity      { return i.severity }
func (i *Issue) Status() vo.IssueStatus     { return i.status }
func (i *Issue) ProductArea() string        { return i.productArea }
func (i *Issue) Priority() int              { return i.priority }
func (i *Issue) StatusChangedAt() time.Time { return i.statusChangedAt }
func (i *Issue) ResolvedAt() *time.Time     { return i.resolvedAt }
func (i *Issue) CreatedAt() time.Time       { return i.createdAt }
func (i *Issue) UpdatedAt() time.Time       { return i.updatedAt }

func (i *Issue) Comments() []*Comment {
	out := make([]*Comment, len(i.comments))
	copy(out, i.comments)
	return out
}

func (i *Issue) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("issue ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("issue ID cannot be zero")
	}
	i.id = id
	return nil
}

// AssignSeverity records the classifier's verdict on intake or an
// explicit re-grade by an agent.
func (i *Issue) AssignSeverity(severity vo.Severity) error {
	if !severity.IsValid() {
		return fmt.Errorf("invalid severity: %s", severity)
	}
	i.severity = severity
	i.updatedAt = time.Now().UTC()
	return nil
}

// SetPriority stores the composite priority score (1..10).
func (i *Issue) SetPriority(score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("priority score must be between 1 and 10, got %d", score)
	}
	i.priority = score
	i.updatedAt = time.Now().UTC()
	return nil
}

// ChangeStatus transitions the issue and maintains the resolved
// timestamp invariant. A no-op transition to the current status
// returns nil without touching timestamps.
func (i *Issue) ChangeStatus(newStatus vo.IssueStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if i.status == newStatus {
		return nil
	}
	if !i.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", i.status, newStatus)
	}

	now := time.Now().UTC()
	i.status = newStatus
	i.statusChangedAt = now
	i.updatedAt = now

	if newStatus.IsTerminal() {
		if i.resolvedAt == nil {
			i.resolvedAt = &now
		}
	} else {
		i.resolvedAt = nil
	}

	return nil
}

// UpdateContent replaces title and description. The caller is
// responsible for replacing the issue's embedding vector afterwards.
func (i *Issue) UpdateContent(title, description string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	i.title = title
	i.description = description
	i.updatedAt = time.Now().UTC()
	return nil
}

func (i *Issue) AddComment(comment *Comment) error {
	if comment == nil {
		return fmt.Errorf("comment cannot be nil")
	}
	if comment.IssueID() != i.id {
		return fmt.Errorf("comment issue ID mismatch")
	}
	i.comments = append(i.comments, comment)
	i.updatedAt = time.Now().UTC()
	return nil
}

// AttachComments replaces the loaded comment list. Used by the
// repository when hydrating an aggregate.
func (i *Issue) AttachComments(comments []*Comment) {
	i.comments = comments
}

// SearchText is the text the embedding vector is derived from.
func (i *Issue) SearchText() string {
	return i.title + " " + i.description
}

// AgeAt returns how long the issue has been waiting at the given
// instant: time since creation or since the last status change,
// whichever is more recent.
func (i *Issue) AgeAt(now time.Time) time.Duration {
	ref := i.createdAt
	if i.statusChangedAt.After(ref) {
		ref = i.statusChangedAt
	}
	return now.Sub(ref)
}

// ResolutionHours returns the hours from creation to resolution, or
// false when the issue is still active.
func (i *Issue) ResolutionHours() (float64, bool) {
	if i.resolvedAt == nil {
		return 0, false
	}
	return i.resolvedAt.Sub(i.createdAt).Hours(), true
}
