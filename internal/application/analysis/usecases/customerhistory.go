package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/aegis-support/aegis/internal/domain/customer"
	"github.com/aegis-support/aegis/internal/domain/issue"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	"github.com/aegis-support/aegis/internal/infrastructure/metrics"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

// HistoryNamespace is the cache namespace for customer history rollups.
// Writes that touch a customer's issues invalidate this namespace key.
const HistoryNamespace = "history"

type GetCustomerHistoryCommand struct {
	CustomerID uint
}

type CustomerInfo struct {
	CustomerID uint   `json:"customer_id"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	Tier       string `json:"tier"`
}

type HistoryStatistics struct {
	TotalIssues        int64      `json:"total_issues"`
	ResolvedIssues     int64      `json:"resolved_issues"`
	OpenIssues         int64      `json:"open_issues"`
	CriticalIssues     int64      `json:"critical_issues"`
	HighIssues         int64      `json:"high_issues"`
	AvgResolutionHours float64    `json:"avg_resolution_hours"`
	LastIssueAt        *time.Time `json:"last_issue_at,omitempty"`
	IssuesLast30Days   int64      `json:"issues_last_30_days"`
}

type RecentIssue struct {
	IssueID   uint      `json:"issue_id"`
	Title     string    `json:"title"`
	Severity  string    `json:"severity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomerHistoryResult struct {
	Customer     CustomerInfo      `json:"customer"`
	Statistics   HistoryStatistics `json:"statistics"`
	RecentIssues []RecentIssue     `json:"recent_issues"`
	RiskLevel    string            `json:"risk_level"`
}

type GetCustomerHistoryUseCase struct {
	customerRepo customer.Repository
	issueRepo    issue.Repository
	store        cache.Store
	historyTTL   time.Duration
	logger       logger.Interface
}

func NewGetCustomerHistoryUseCase(
	customerRepo customer.Repository,
	issueRepo issue.Repository,
	store cache.Store,
	historyTTL time.Duration,
	logger logger.Interface,
) *GetCustomerHistoryUseCase {
	return &GetCustomerHistoryUseCase{
		customerRepo: customerRepo,
		issueRepo:    issueRepo,
		store:        store,
		historyTTL:   historyTTL,
		logger:       logger,
	}
}

func historyCacheKey(customerID uint) string {
	return fmt.Sprintf("customer:%d", customerID)
}

func (uc *GetCustomerHistoryUseCase) Execute(ctx context.Context, cmd GetCustomerHistoryCommand) (*CustomerHistoryResult, error) {
	if cmd.CustomerID == 0 {
		return nil, errors.NewValidationError("customer ID is required")
	}

	key := historyCacheKey(cmd.CustomerID)
	cached, hit, err := cache.GetJSON[CustomerHistoryResult](ctx, uc.store, HistoryNamespace, key)
	if err != nil {
		// Cache errors degrade to a repository read, never a failure.
		uc.logger.Warnw("history cache read failed", "customer_id", cmd.CustomerID, "error", err)
	}
	metrics.ObserveCacheLookup(HistoryNamespace, hit)
	if hit {
		return &cached, nil
	}

	result, err := uc.build(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := cache.PutJSON(ctx, uc.store, HistoryNamespace, key, result, uc.historyTTL); err != nil {
		uc.logger.Warnw("history cache write failed", "customer_id", cmd.CustomerID, "error", err)
	}

	return result, nil
}

func (uc *GetCustomerHistoryUseCase) build(ctx context.Context, customerID uint) (*CustomerHistoryResult, error) {
	cust, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		uc.logger.Errorw("failed to load customer", "customer_id", customerID, "error", err)
		return nil, err
	}

	stats, err := uc.issueRepo.CustomerStats(ctx, customerID)
	if err != nil {
		uc.logger.Errorw("failed to load customer stats", "customer_id", customerID, "error", err)
		return nil, err
	}

	pageSize := 10
	recent, _, err := uc.issueRepo.List(ctx, issue.IssueFilter{
		CustomerID: &customerID,
		Page:       1,
		PageSize:   pageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to load recent issues", "customer_id", customerID, "error", err)
		return nil, err
	}

	recentIssues := make([]RecentIssue, 0, len(recent))
	for _, iss := range recent {
		recentIssues = append(recentIssues, RecentIssue{
			IssueID:   iss.ID(),
			Title:     iss.Title(),
			Severity:  iss.Severity().String(),
			Status:    iss.Status().String(),
			CreatedAt: iss.CreatedAt(),
		})
	}

	return &CustomerHistoryResult{
		Customer: CustomerInfo{
			CustomerID: cust.ID(),
			Name:       cust.Name(),
			Company:    cust.Company(),
			Tier:       cust.Tier().String(),
		},
		Statistics: HistoryStatistics{
			TotalIssues:        stats.TotalIssues,
			ResolvedIssues:     stats.ResolvedIssues,
			OpenIssues:         stats.OpenIssues,
			CriticalIssues:     stats.CriticalIssues,
			HighIssues:         stats.HighIssues,
			AvgResolutionHours: stats.AvgResolutionHours,
			LastIssueAt:        stats.LastIssueAt,
			IssuesLast30Days:   stats.IssuesLast30Days,
		},
		RecentIssues: recentIssues,
		RiskLevel:    riskLevel(stats),
	}, nil
}

// riskLevel scores the customer's issue pattern. Volume, open severity,
// recent churn, and slow resolutions each add to the score; the level
// is read off fixed thresholds so it is stable across calls.
func riskLevel(stats *issue.CustomerStats) string {
	score := 0

	switch {
	case stats.TotalIssues > 20:
		score += 2
	case stats.TotalIssues > 10:
		score++
	}

	if stats.CriticalIssues > 0 {
		score += 3
	}
	if stats.HighIssues > 3 {
		score += 2
	}
	if stats.IssuesLast30Days > 5 {
		score += 2
	}
	if stats.AvgResolutionHours > 48 {
		score += 2
	}

	switch {
	case score >= 6:
		return "high"
	case score >= 3:
		return "medium"
	default:
		return "low"
	}
}
