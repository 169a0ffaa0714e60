package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	"github.com/aegis-support/aegis/internal/domain/issue"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type SummarizeIssueCommand struct {
	IssueID uint
}

type SummarizeIssueResult struct {
	IssueID           uint                         `json:"issue_id"`
	Summary           string                       `json:"summary"`
	KeyPoints         []string                     `json:"key_points"`
	ActionItems       []string                     `json:"action_items"`
	Metrics           guidance.ConversationMetrics `json:"conversation_metrics"`
	ResolutionSummary *string                      `json:"resolution_summary,omitempty"`
	Persisted         bool                         `json:"persisted"`
}

// SummarizeIssueUseCase condenses an issue's conversation thread into a
// stored summary. The metrics are computed locally and are always
// accurate; the narrative text degrades to a deterministic stub when
// the generator is unavailable.
type SummarizeIssueUseCase struct {
	issueRepo   issue.Repository
	commentRepo issue.CommentRepository
	summaryRepo guidance.SummaryRepository
	generator   guidance.TextGenerator
	logger      logger.Interface
}

func NewSummarizeIssueUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	summaryRepo guidance.SummaryRepository,
	generator guidance.TextGenerator,
	logger logger.Interface,
) *SummarizeIssueUseCase {
	return &SummarizeIssueUseCase{
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		summaryRepo: summaryRepo,
		generator:   generator,
		logger:      logger,
	}
}

// generatedSummary is the shape the generator is asked to reply in.
type generatedSummary struct {
	Summary           string   `json:"summary"`
	KeyPoints         []string `json:"key_points"`
	ActionItems       []string `json:"action_items"`
	ResolutionSummary string   `json:"resolution_summary"`
}

func (uc *SummarizeIssueUseCase) Execute(ctx context.Context, cmd SummarizeIssueCommand) (*SummarizeIssueResult, error) {
	uc.logger.Infow("executing summarize issue use case", "issue_id", cmd.IssueID)

	if cmd.IssueID == 0 {
		return nil, errors.NewValidationError("issue ID is required")
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		return nil, err
	}
	comments, err := uc.commentRepo.ListByIssueID(ctx, cmd.IssueID)
	if err != nil {
		uc.logger.Errorw("failed to load conversation", "issue_id", cmd.IssueID, "error", err)
		return nil, err
	}

	if len(comments) == 0 {
		return &SummarizeIssueResult{
			IssueID:     cmd.IssueID,
			Summary:     "No conversation history available",
			KeyPoints:   []string{},
			ActionItems: []string{},
		}, nil
	}

	metrics := conversationMetrics(comments)
	generated := uc.generate(ctx, iss, comments)

	var resolution *string
	if iss.Status() == issuevo.StatusResolved && generated.ResolutionSummary != "" {
		resolution = &generated.ResolutionSummary
	}

	summary, err := guidance.NewSummary(
		iss.ID(),
		generated.Summary,
		generated.KeyPoints,
		generated.ActionItems,
		metrics,
		resolution,
	)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	persisted := true
	if err := uc.summaryRepo.Save(ctx, summary); err != nil {
		// The caller still gets the summary; only durability is lost.
		uc.logger.Errorw("failed to persist summary", "issue_id", cmd.IssueID, "error", err)
		persisted = false
	}

	return &SummarizeIssueResult{
		IssueID:           cmd.IssueID,
		Summary:           generated.Summary,
		KeyPoints:         generated.KeyPoints,
		ActionItems:       generated.ActionItems,
		Metrics:           metrics,
		ResolutionSummary: resolution,
		Persisted:         persisted,
	}, nil
}

func (uc *SummarizeIssueUseCase) generate(ctx context.Context, iss *issue.Issue, comments []*issue.Comment) generatedSummary {
	prompt := fmt.Sprintf(`Summarize this customer support conversation:

Issue Details:
- Title: %s
- Severity: %s
- Status: %s
- Category: %s

Conversation:
%s

Provide:
1. A concise summary (2-3 paragraphs) of the entire conversation
2. Key points raised by the customer and support
3. Outstanding action items for support or customer
4. A short resolution summary if the issue reads as resolved

Respond with only a JSON object with keys: summary, key_points, action_items, resolution_summary.`,
		iss.Title(), iss.Severity().String(), iss.Status().String(), iss.Category().String(),
		formatConversation(comments))

	reply, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		uc.logger.Warnw("summary generation failed, serving stub", "issue_id", iss.ID(), "error", err)
		return stubSummary(iss, comments)
	}

	var generated generatedSummary
	if err := json.Unmarshal([]byte(extractJSON(reply)), &generated); err != nil || generated.Summary == "" {
		uc.logger.Warnw("summary generation returned unparseable reply, serving stub", "issue_id", iss.ID())
		return stubSummary(iss, comments)
	}
	if generated.KeyPoints == nil {
		generated.KeyPoints = []string{}
	}
	if generated.ActionItems == nil {
		generated.ActionItems = []string{}
	}
	return generated
}

func formatConversation(comments []*issue.Comment) string {
	var b strings.Builder
	for _, c := range comments {
		fmt.Fprintf(&b, "[%s] %s: %s\n", c.CreatedAt().Format("2006-01-02 15:04"), c.AuthorRole(), c.Content())
	}
	return b.String()
}

func stubSummary(iss *issue.Issue, comments []*issue.Comment) generatedSummary {
	return generatedSummary{
		Summary: fmt.Sprintf("Conversation on issue %q (%s severity, %s) with %d messages. Automatic summarization was unavailable.",
			iss.Title(), iss.Severity().String(), iss.Status().String(), len(comments)),
		KeyPoints:   []string{},
		ActionItems: []string{},
	}
}

// conversationMetrics derives the thread's shape: message counts per
// side, total duration, and customer-to-support response times.
// Comments arrive ordered by creation time.
func conversationMetrics(comments []*issue.Comment) guidance.ConversationMetrics {
	metrics := guidance.ConversationMetrics{
		TotalMessages: len(comments),
	}

	for _, c := range comments {
		if c.AuthorRole() == "customer" {
			metrics.CustomerMessages++
		} else {
			metrics.SupportMessages++
		}
	}

	if len(comments) > 1 {
		first := comments[0].CreatedAt()
		last := comments[len(comments)-1].CreatedAt()
		metrics.DurationHours = last.Sub(first).Hours()
	}

	var responseTimes []float64
	for i := 1; i < len(comments); i++ {
		prev, curr := comments[i-1], comments[i]
		if prev.AuthorRole() == "customer" && curr.AuthorRole() != "customer" {
			responseTimes = append(responseTimes, curr.CreatedAt().Sub(prev.CreatedAt()).Hours())
		}
	}
	if len(responseTimes) > 0 {
		var sum, max float64
		for _, rt := range responseTimes {
			sum += rt
			if rt > max {
				max = rt
			}
		}
		avg := sum / float64(len(responseTimes))
		metrics.AvgResponseHours = &avg
		metrics.MaxResponseHours = &max
	}

	return metrics
}
