package usecases

import (
	"context"

	"github.com/aegis-support/aegis/internal/domain/analysis"
	"github.com/aegis-support/aegis/internal/domain/issue"
	"github.com/aegis-support/aegis/internal/infrastructure/metrics"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

const warmBatchSize = 500

// WarmIndexUseCase rebuilds the in-memory similarity index from the
// issue store. The index is derived state, so a cold process runs this
// once at startup before similarity queries are meaningful.
type WarmIndexUseCase struct {
	issueRepo  issue.Repository
	vectorizer *analysis.Vectorizer
	index      *analysis.Index
	logger     logger.Interface
}

func NewWarmIndexUseCase(
	issueRepo issue.Repository,
	vectorizer *analysis.Vectorizer,
	index *analysis.Index,
	logger logger.Interface,
) *WarmIndexUseCase {
	return &WarmIndexUseCase{
		issueRepo:  issueRepo,
		vectorizer: vectorizer,
		index:      index,
		logger:     logger,
	}
}

// Execute pages through all issues by ascending id and indexes each
// one. It returns the number of issues indexed. Implements the batch
// job contract used by the scheduler.
func (uc *WarmIndexUseCase) Execute(ctx context.Context) (int, error) {
	var afterID uint
	indexed := 0

	for {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}

		batch, err := uc.issueRepo.ListAfterID(ctx, afterID, warmBatchSize)
		if err != nil {
			uc.logger.Errorw("failed to list issues for index warmup", "after_id", afterID, "error", err)
			return indexed, err
		}
		if len(batch) == 0 {
			break
		}

		for _, iss := range batch {
			vec := uc.vectorizer.Vector(iss.SearchText())
			if err := uc.index.Upsert(iss.ID(), vec); err != nil {
				uc.logger.Warnw("failed to index issue", "issue_id", iss.ID(), "error", err)
				continue
			}
			indexed++
		}
		afterID = batch[len(batch)-1].ID()
	}

	metrics.SetIndexSize(uc.index.Len())
	uc.logger.Infow("similarity index warmed", "indexed", indexed, "index_size", uc.index.Len())
	return indexed, nil
}
