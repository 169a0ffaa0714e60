package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aegis-support/aegis/internal/domain/issue"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/mappers"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
	"github.com/aegis-support/aegis/internal/shared/db"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

type IssueRepository struct {
	db     *gorm.DB
	mapper mappers.IssueMapper
}

func NewIssueRepository(database *gorm.DB) *IssueRepository {
	return &IssueRepository{
		db:     database,
		mapper: mappers.NewIssueMapper(),
	}
}

func (r *IssueRepository) Save(ctx context.Context, iss *issue.Issue) error {
	model := r.mapper.ToModel(iss)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save issue: %w", err)
	}

	return iss.SetID(model.ID)
}

func (r *IssueRepository) Update(ctx context.Context, iss *issue.Issue) error {
	model := r.mapper.ToModel(iss)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.IssueModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update issue: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *IssueRepository) GetByID(ctx context.Context, id uint) (*issue.Issue, error) {
	var model models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("issue not found", fmt.Sprintf("id=%d", id))
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *IssueRepository) GetByIDs(ctx context.Context, ids []uint) ([]*issue.Issue, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var modelList []models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id IN ?", ids).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to find issues: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *IssueRepository) List(ctx context.Context, filter issue.IssueFilter) ([]*issue.Issue, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.IssueModel{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", filter.Severity.String())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var modelList []models.IssueModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	issues, err := r.toDomainList(modelList)
	if err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

func (r *IssueRepository) ListActive(ctx context.Context) ([]*issue.Issue, error) {
	var modelList []models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("status IN ?", activeStatuses()).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list active issues: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *IssueRepository) ListAfterID(ctx context.Context, afterID uint, limit int) ([]*issue.Issue, error) {
	if limit <= 0 {
		limit = 500
	}

	var modelList []models.IssueModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to page issues: %w", err)
	}

	return r.toDomainList(modelList)
}

// issueStatsRow receives the single-pass aggregation over one
// customer's issues.
type issueStatsRow struct {
	TotalIssues      int64
	ResolvedIssues   int64
	OpenIssues       int64
	CriticalIssues   int64
	HighIssues       int64
	AvgResolutionMs  *float64
	LastIssueAt      *int64
	IssuesLast30Days int64
}

func (r *IssueRepository) CustomerStats(ctx context.Context, customerID uint) (*issue.CustomerStats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	cutoff := time.Now().UTC().AddDate(0, 0, -30).UnixMilli()

	var row issueStatsRow
	err := tx.Model(&models.IssueModel{}).
		Select(
			"COUNT(*) AS total_issues, "+
				"COALESCE(SUM(CASE WHEN status IN ('resolved','closed') THEN 1 ELSE 0 END), 0) AS resolved_issues, "+
				"COALESCE(SUM(CASE WHEN status IN ('open','in_progress','escalated') THEN 1 ELSE 0 END), 0) AS open_issues, "+
				"COALESCE(SUM(CASE WHEN severity = 'critical' THEN 1 ELSE 0 END), 0) AS critical_issues, "+
				"COALESCE(SUM(CASE WHEN severity = 'high' THEN 1 ELSE 0 END), 0) AS high_issues, "+
				"AVG(CASE WHEN resolved_at IS NOT NULL THEN resolved_at - created_at END) AS avg_resolution_ms, "+
				"MAX(created_at) AS last_issue_at, "+
				"COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0) AS issues_last30_days",
			cutoff,
		).
		Where("customer_id = ?", customerID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customer stats: %w", err)
	}

	stats := &issue.CustomerStats{
		TotalIssues:      row.TotalIssues,
		ResolvedIssues:   row.ResolvedIssues,
		OpenIssues:       row.OpenIssues,
		CriticalIssues:   row.CriticalIssues,
		HighIssues:       row.HighIssues,
		IssuesLast30Days: row.IssuesLast30Days,
	}

	if row.AvgResolutionMs != nil {
		stats.AvgResolutionHours = *row.AvgResolutionMs / float64(time.Hour/time.Millisecond)
	}

	if row.LastIssueAt != nil {
		t := time.Unix(0, *row.LastIssueAt*int64(time.Millisecond))
		stats.LastIssueAt = &t
	}

	return stats, nil
}

// customerEscalationRow receives the per-customer grouping used by the
// customer escalation sweep predicate.
type customerEscalationRow struct {
	CustomerID    uint
	IssueCount    int64
	NewestIssueID uint
}

func (r *IssueRepository) CustomersInEscalation(ctx context.Context, since time.Time, minCount int) ([]issue.CustomerEscalation, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []customerEscalationRow
	err := tx.Model(&models.IssueModel{}).
		Select("customer_id, COUNT(*) AS issue_count, MAX(id) AS newest_issue_id").
		Where("status IN ?", activeStatuses()).
		Where("severity IN ?", []string{"high", "critical"}).
		Where("created_at >= ?", since.UnixMilli()).
		Group("customer_id").
		Having("COUNT(*) >= ?", minCount).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query escalating customers: %w", err)
	}

	out := make([]issue.CustomerEscalation, 0, len(rows))
	for _, row := range rows {
		out = append(out, issue.CustomerEscalation{
			CustomerID:    row.CustomerID,
			IssueCount:    row.IssueCount,
			NewestIssueID: row.NewestIssueID,
		})
	}
	return out, nil
}

func (r *IssueRepository) toDomainList(modelList []models.IssueModel) ([]*issue.Issue, error) {
	issues := make([]*issue.Issue, 0, len(modelList))
	for i := range modelList {
		iss, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		issues = append(issues, iss)
	}
	return issues, nil
}

func activeStatuses() []string {
	return []string{"open", "in_progress", "escalated"}
}
