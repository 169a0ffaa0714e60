package usecases

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aegis-support/aegis/internal/domain/analysis"
	"github.com/aegis-support/aegis/internal/domain/customer"
	"github.com/aegis-support/aegis/internal/domain/issue"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	"github.com/aegis-support/aegis/internal/infrastructure/metrics"
	sharedConfig "github.com/aegis-support/aegis/internal/shared/config"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type AnalyzeIssueCommand struct {
	CustomerID  uint
	Title       string
	Description string
	Category    string
	ProductArea string
}

type SimilarIssue struct {
	IssueID         uint     `json:"issue_id"`
	Title           string   `json:"title"`
	Severity        string   `json:"severity"`
	Status          string   `json:"status"`
	Score           float64  `json:"score"`
	ResolutionHours *float64 `json:"resolution_hours,omitempty"`
}

type AnalyzeIssueResult struct {
	IssueID               uint                   `json:"issue_id"`
	Severity              string                 `json:"severity"`
	Confidence            float64                `json:"confidence"`
	NeedsHumanReview      bool                   `json:"needs_human_review"`
	PriorityScore         int                    `json:"priority_score"`
	SimilarIssues         []SimilarIssue         `json:"similar_issues"`
	SimilarityUnavailable bool                   `json:"similarity_unavailable"`
	CustomerHistory       *CustomerHistoryResult `json:"customer_history,omitempty"`
	Recommendations       []string               `json:"recommendations"`
}

// AnalyzeIssueUseCase runs the full intake pipeline for a new issue:
// classify, persist, index, find similar issues, and score priority.
// Similarity and history are advisory, so their failures degrade the
// result instead of failing it; the persisted issue always survives.
type AnalyzeIssueUseCase struct {
	issueRepo    issue.Repository
	customerRepo customer.Repository
	classifier   *analysis.Classifier
	vectorizer   *analysis.Vectorizer
	index        *analysis.Index
	historyUC    *GetCustomerHistoryUseCase
	store        cache.Store
	cfg          sharedConfig.AnalysisConfig
	logger       logger.Interface
}

func NewAnalyzeIssueUseCase(
	issueRepo issue.Repository,
	customerRepo customer.Repository,
	classifier *analysis.Classifier,
	vectorizer *analysis.Vectorizer,
	index *analysis.Index,
	historyUC *GetCustomerHistoryUseCase,
	store cache.Store,
	cfg sharedConfig.AnalysisConfig,
	logger logger.Interface,
) *AnalyzeIssueUseCase {
	return &AnalyzeIssueUseCase{
		issueRepo:    issueRepo,
		customerRepo: customerRepo,
		classifier:   classifier,
		vectorizer:   vectorizer,
		index:        index,
		historyUC:    historyUC,
		store:        store,
		cfg:          cfg,
		logger:       logger,
	}
}

func (uc *AnalyzeIssueUseCase) Execute(ctx context.Context, cmd AnalyzeIssueCommand) (*AnalyzeIssueResult, error) {
	started := time.Now()
	uc.logger.Infow("executing analyze issue use case", "customer_id", cmd.CustomerID, "title", cmd.Title)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid analyze issue command", "error", err)
		metrics.ObserveAnalysis(time.Since(started), "error")
		return nil, err
	}

	cust, err := uc.customerRepo.GetByID(ctx, cmd.CustomerID)
	if err != nil {
		uc.logger.Errorw("failed to load customer", "customer_id", cmd.CustomerID, "error", err)
		metrics.ObserveAnalysis(time.Since(started), "error")
		return nil, err
	}

	category := issuevo.Category(cmd.Category)
	newIssue, err := issue.NewIssue(cmd.CustomerID, cmd.Title, cmd.Description, category, cmd.ProductArea)
	if err != nil {
		uc.logger.Errorw("failed to create issue entity", "error", err)
		metrics.ObserveAnalysis(time.Since(started), "error")
		return nil, errors.NewValidationError(err.Error())
	}

	verdict := uc.classifier.Classify(newIssue.SearchText(), category, cust.Tier())
	if err := newIssue.AssignSeverity(verdict.Severity); err != nil {
		metrics.ObserveAnalysis(time.Since(started), "error")
		return nil, errors.NewInternalError(err.Error())
	}

	if err := uc.issueRepo.Save(ctx, newIssue); err != nil {
		uc.logger.Errorw("failed to save issue", "error", err)
		metrics.ObserveAnalysis(time.Since(started), "error")
		return nil, err
	}

	// The new issue changes the customer's rollup, so drop the cached
	// history before rereading it below.
	if err := uc.store.Invalidate(ctx, HistoryNamespace, historyCacheKey(cmd.CustomerID)); err != nil {
		uc.logger.Warnw("failed to invalidate history cache", "customer_id", cmd.CustomerID, "error", err)
	}

	var (
		similar    []SimilarIssue
		similarErr error
		history    *CustomerHistoryResult
		historyErr error
	)

	// Both branches are advisory: each records its own failure so a
	// broken one never cancels the other. The group only propagates
	// context cancellation.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		similar, similarErr = uc.findSimilar(gctx, newIssue)
		return gctx.Err()
	})
	g.Go(func() error {
		history, historyErr = uc.historyUC.Execute(gctx, GetCustomerHistoryCommand{CustomerID: cmd.CustomerID})
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		metrics.ObserveAnalysis(time.Since(started), "error")
		return nil, err
	}

	if similarErr != nil {
		uc.logger.Warnw("similarity lookup failed, continuing without it", "issue_id", newIssue.ID(), "error", similarErr)
	}
	if historyErr != nil {
		uc.logger.Warnw("customer history failed, continuing without it", "customer_id", cmd.CustomerID, "error", historyErr)
		history = nil
	}

	score := priorityScore(verdict.Severity, cust.Tier().PriorityBoost(), history, len(similar))
	if err := newIssue.SetPriority(score); err != nil {
		metrics.ObserveAnalysis(time.Since(started), "error")
		return nil, errors.NewInternalError(err.Error())
	}
	if err := uc.issueRepo.Update(ctx, newIssue); err != nil {
		uc.logger.Errorw("failed to persist priority score", "issue_id", newIssue.ID(), "error", err)
		metrics.ObserveAnalysis(time.Since(started), "error")
		return nil, err
	}

	outcome := "success"
	if similarErr != nil || historyErr != nil {
		outcome = "partial"
	}
	metrics.ObserveAnalysis(time.Since(started), outcome)

	uc.logger.Infow("issue analyzed",
		"issue_id", newIssue.ID(),
		"severity", verdict.Severity.String(),
		"confidence", verdict.Confidence,
		"priority", score,
		"similar_count", len(similar),
	)

	return &AnalyzeIssueResult{
		IssueID:               newIssue.ID(),
		Severity:              verdict.Severity.String(),
		Confidence:            verdict.Confidence,
		NeedsHumanReview:      verdict.Confidence < uc.cfg.ConfidenceThreshold,
		PriorityScore:         score,
		SimilarIssues:         similar,
		SimilarityUnavailable: similarErr != nil,
		CustomerHistory:       history,
		Recommendations:       recommendations(verdict.Severity, similar, history),
	}, nil
}

func (uc *AnalyzeIssueUseCase) validateCommand(cmd AnalyzeIssueCommand) error {
	if cmd.CustomerID == 0 {
		return errors.NewValidationError("customer ID is required")
	}
	if len(cmd.Title) == 0 {
		return errors.NewValidationError("title is required")
	}
	if len(cmd.Description) == 0 {
		return errors.NewValidationError("description is required")
	}
	if !issuevo.Category(cmd.Category).IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid category: %s", cmd.Category))
	}
	return nil
}

// findSimilar indexes the new issue and queries its neighbors. The
// upsert happens here so the issue is discoverable by later analyses
// even when its own query fails.
func (uc *AnalyzeIssueUseCase) findSimilar(ctx context.Context, newIssue *issue.Issue) ([]SimilarIssue, error) {
	vec := uc.vectorizer.Vector(newIssue.SearchText())
	if err := uc.index.Upsert(newIssue.ID(), vec); err != nil {
		return nil, err
	}
	metrics.SetIndexSize(uc.index.Len())

	matches, err := uc.index.Query(vec, uc.cfg.SimilarityTopK, uc.cfg.SimilarityMinScore, newIssue.ID())
	if err != nil {
		return nil, err
	}
	return hydrate(ctx, uc.issueRepo, matches)
}

// priorityScore composes severity, customer tier, customer risk, and
// similar-issue availability into a 1 to 10 score.
func priorityScore(severity issuevo.Severity, tierBoost int, history *CustomerHistoryResult, similarCount int) int {
	score := 5

	switch severity {
	case issuevo.SeverityCritical:
		score += 4
	case issuevo.SeverityHigh:
		score += 3
	case issuevo.SeverityLow:
		score -= 2
	}

	score += tierBoost

	if history != nil {
		switch history.RiskLevel {
		case "high":
			score += 2
		case "medium":
			score++
		}
	}

	// Plenty of similar resolved issues usually means a known problem
	// with a known fix.
	if similarCount > 3 {
		score--
	}

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

func recommendations(severity issuevo.Severity, similar []SimilarIssue, history *CustomerHistoryResult) []string {
	recs := []string{}

	switch severity {
	case issuevo.SeverityCritical:
		recs = append(recs,
			"Immediately assign to senior technical team",
			"Notify customer within 15 minutes",
			"Prepare executive escalation path",
		)
	case issuevo.SeverityHigh:
		recs = append(recs,
			"Assign to experienced support engineer",
			"Respond to customer within 1 hour",
			"Monitor progress every 2 hours",
		)
	}

	if len(similar) > 0 {
		var sum float64
		var n int
		for _, s := range similar {
			if s.ResolutionHours != nil {
				sum += *s.ResolutionHours
				n++
			}
		}
		if n > 0 {
			recs = append(recs, fmt.Sprintf("Based on similar issues, expected resolution time: %.1f hours", sum/float64(n)))
		}
		if len(similar) >= 3 {
			recs = append(recs, "Review resolutions of similar past issues")
		}
	}

	if history != nil && history.RiskLevel == "high" {
		recs = append(recs,
			"Consider proactive communication",
			"Involve account manager if available",
		)
	}

	return recs
}
