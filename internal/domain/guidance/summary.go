package guidance

import (
	"fmt"
	"time"
)

// ConversationMetrics are derived locally from the issue's comment
// thread, independent of the generated summary text.
type ConversationMetrics struct {
	TotalMessages    int      `json:"total_messages"`
	CustomerMessages int      `json:"customer_messages"`
	SupportMessages  int      `json:"support_messages"`
	DurationHours    float64  `json:"duration_hours"`
	AvgResponseHours *float64 `json:"avg_response_hours,omitempty"`
	MaxResponseHours *float64 `json:"max_response_hours,omitempty"`
}

// Summary is a generated conversation summary for one issue. The text
// comes from the text generator; the metrics are computed locally and
// remain valid even when generation fell back to a stub.
type Summary struct {
	id                uint
	issueID           uint
	summaryText       string
	keyPoints         []string
	actionItems       []string
	metrics           ConversationMetrics
	resolutionSummary *string
	createdAt         time.Time
}

func NewSummary(
	issueID uint,
	summaryText string,
	keyPoints []string,
	actionItems []string,
	metrics ConversationMetrics,
	resolutionSummary *string,
) (*Summary, error) {
	if issueID == 0 {
		return nil, fmt.Errorf("issue ID is required")
	}
	if len(summaryText) == 0 {
		return nil, fmt.Errorf("summary text is required")
	}

	return &Summary{
		issueID:           issueID,
		summaryText:       summaryText,
		keyPoints:         keyPoints,
		actionItems:       actionItems,
		metrics:           metrics,
		resolutionSummary: resolutionSummary,
		createdAt:         time.Now().UTC(),
	}, nil
}

func ReconstructSummary(
	id uint,
	issueID uint,
	summaryText string,
	keyPoints []string,
	actionItems []string,
	metrics ConversationMetrics,
	resolutionSummary *string,
	createdAt time.Time,
) (*Summary, error) {
	if id == 0 {
		return nil, fmt.Errorf("summary ID cannot be zero")
	}

	return &Summary{
		id:                id,
		issueID:           issueID,
		summaryText:       summaryText,
		keyPoints:         keyPoints,
		actionItems:       actionItems,
		metrics:           metrics,
		resolutionSummary: resolutionSummary,
		createdAt:         createdAt,
	}, nil
}

func (s *Summary) ID() uint                     { return s.id }
func (s *Summary) IssueID() uint                { return s.issueID }
func (s *Summary) SummaryText() string          { return s.summaryText }
func (s *Summary) Metrics() ConversationMetrics { return s.metrics }
func (s *Summary) ResolutionSummary() *string   { return s.resolutionSummary }
func (s *Summary) CreatedAt() time.Time         { return s.createdAt }

func (s *Summary) KeyPoints() []string {
	out := make([]string, len(s.keyPoints))
	copy(out, s.keyPoints)
	return out
}

func (s *Summary) ActionItems() []string {
	out := make([]string, len(s.actionItems))
	copy(out, s.actionItems)
	return out
}

func (s *Summary) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("summary ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("summary ID cannot be zero")
	}
	s.id = id
	return nil
}
