package valueobjects

import "fmt"

type IssueStatus string

const (
	StatusOpen       IssueStatus = "open"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
	StatusEscalated  IssueStatus = "escalated"
)

var validIssueStatuses = map[IssueStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusClosed:     true,
	StatusEscalated:  true,
}

var issueStatusTransitions = map[IssueStatus][]IssueStatus{
	StatusOpen: {
		StatusInProgress,
		StatusEscalated,
		StatusResolved,
		StatusClosed,
	},
	StatusInProgress: {
		StatusOpen,
		StatusEscalated,
		StatusResolved,
		StatusClosed,
	},
	StatusEscalated: {
		StatusInProgress,
		StatusResolved,
		StatusClosed,
	},
	StatusResolved: {
		StatusOpen,
		StatusClosed,
	},
	StatusClosed: {},
}

func (s IssueStatus) String() string {
	return string(s)
}

func (s IssueStatus) IsValid() bool {
	return validIssueStatuses[s]
}

func (s IssueStatus) CanTransitionTo(newStatus IssueStatus) bool {
	allowed, ok := issueStatusTransitions[s]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == newStatus {
			return true
		}
	}
	return false
}

// IsActive reports whether the issue still needs attention. Active
// issues are the ones the critical issue monitor sweeps over.
func (s IssueStatus) IsActive() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusEscalated
}

// IsTerminal reports whether the issue has reached a resolution state.
func (s IssueStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

func (s IssueStatus) IsEscalated() bool {
	return s == StatusEscalated
}

func NewIssueStatus(s string) (IssueStatus, error) {
	st := IssueStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid issue status: %s", s)
	}
	return st, nil
}
