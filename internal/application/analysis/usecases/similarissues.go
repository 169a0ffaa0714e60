package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/aegis-support/aegis/internal/domain/analysis"
	"github.com/aegis-support/aegis/internal/domain/issue"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	"github.com/aegis-support/aegis/internal/infrastructure/metrics"
	sharedConfig "github.com/aegis-support/aegis/internal/shared/config"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

// SimilarityNamespace caches neighbor lists per issue. Entries ride
// out their TTL rather than being invalidated on writes: a slightly
// stale neighbor list is acceptable, a recomputed one is not free.
const SimilarityNamespace = "similarity"

type FindSimilarIssuesCommand struct {
	IssueID uint
	Limit   int
}

type FindSimilarIssuesResult struct {
	IssueID       uint           `json:"issue_id"`
	SimilarIssues []SimilarIssue `json:"similar_issues"`
}

type FindSimilarIssuesUseCase struct {
	issueRepo     issue.Repository
	vectorizer    *analysis.Vectorizer
	index         *analysis.Index
	store         cache.Store
	similarityTTL time.Duration
	cfg           sharedConfig.AnalysisConfig
	logger        logger.Interface
}

func NewFindSimilarIssuesUseCase(
	issueRepo issue.Repository,
	vectorizer *analysis.Vectorizer,
	index *analysis.Index,
	store cache.Store,
	similarityTTL time.Duration,
	cfg sharedConfig.AnalysisConfig,
	logger logger.Interface,
) *FindSimilarIssuesUseCase {
	return &FindSimilarIssuesUseCase{
		issueRepo:     issueRepo,
		vectorizer:    vectorizer,
		index:         index,
		store:         store,
		similarityTTL: similarityTTL,
		cfg:           cfg,
		logger:        logger,
	}
}

func (uc *FindSimilarIssuesUseCase) Execute(ctx context.Context, cmd FindSimilarIssuesCommand) (*FindSimilarIssuesResult, error) {
	if cmd.IssueID == 0 {
		return nil, errors.NewValidationError("issue ID is required")
	}
	limit := cmd.Limit
	if limit <= 0 || limit > uc.cfg.SimilarityTopK {
		limit = uc.cfg.SimilarityTopK
	}

	key := fmt.Sprintf("issue:%d:%d", cmd.IssueID, limit)
	cached, hit, err := cache.GetJSON[FindSimilarIssuesResult](ctx, uc.store, SimilarityNamespace, key)
	if err != nil {
		uc.logger.Warnw("similarity cache read failed", "issue_id", cmd.IssueID, "error", err)
	}
	metrics.ObserveCacheLookup(SimilarityNamespace, hit)
	if hit {
		return &cached, nil
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		return nil, err
	}

	vec := uc.vectorizer.Vector(iss.SearchText())
	matches, err := uc.index.Query(vec, limit, uc.cfg.SimilarityMinScore, iss.ID())
	if err != nil {
		uc.logger.Errorw("similarity query failed", "issue_id", cmd.IssueID, "error", err)
		return nil, errors.NewInternalError(err.Error())
	}

	similar, err := hydrate(ctx, uc.issueRepo, matches)
	if err != nil {
		return nil, err
	}

	result := &FindSimilarIssuesResult{IssueID: cmd.IssueID, SimilarIssues: similar}
	if err := cache.PutJSON(ctx, uc.store, SimilarityNamespace, key, result, uc.similarityTTL); err != nil {
		uc.logger.Warnw("similarity cache write failed", "issue_id", cmd.IssueID, "error", err)
	}
	return result, nil
}

// hydrate joins index matches with their persisted issues, preserving
// match order. Ids the repository no longer knows are skipped; the
// index may briefly trail deletions.
func hydrate(ctx context.Context, repo issue.Repository, matches []analysis.Match) ([]SimilarIssue, error) {
	if len(matches) == 0 {
		return []SimilarIssue{}, nil
	}

	ids := make([]uint, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.IssueID)
	}
	issues, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*issue.Issue, len(issues))
	for _, iss := range issues {
		byID[iss.ID()] = iss
	}

	result := make([]SimilarIssue, 0, len(matches))
	for _, m := range matches {
		iss, ok := byID[m.IssueID]
		if !ok {
			continue
		}
		entry := SimilarIssue{
			IssueID:  iss.ID(),
			Title:    iss.Title(),
			Severity: iss.Severity().String(),
			Status:   iss.Status().String(),
			Score:    m.Score,
		}
		if hours, ok := iss.ResolutionHours(); ok {
			entry.ResolutionHours = &hours
		}
		result = append(result, entry)
	}
	return result, nil
}
