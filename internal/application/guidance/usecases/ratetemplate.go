package usecases

import (
	"context"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

type RateTemplateCommand struct {
	TemplateID uint
	// Rating grades how well the template worked, in [0, 1]. When Rated
	// is false only the usage counter moves.
	Rating float64
	Rated  bool
}

type RateTemplateResult struct {
	TemplateID         uint    `json:"template_id"`
	UsageCount         int     `json:"usage_count"`
	EffectivenessScore float64 `json:"effectiveness_score"`
}

// RateTemplateUseCase records a template being used and optionally
// folds in an effectiveness rating. Ratings shift listing order, so the
// cached listings are dropped.
type RateTemplateUseCase struct {
	templateRepo guidance.TemplateRepository
	store        cache.Store
	logger       logger.Interface
}

func NewRateTemplateUseCase(
	templateRepo guidance.TemplateRepository,
	store cache.Store,
	logger logger.Interface,
) *RateTemplateUseCase {
	return &RateTemplateUseCase{
		templateRepo: templateRepo,
		store:        store,
		logger:       logger,
	}
}

func (uc *RateTemplateUseCase) Execute(ctx context.Context, cmd RateTemplateCommand) (*RateTemplateResult, error) {
	if cmd.TemplateID == 0 {
		return nil, errors.NewValidationError("template ID is required")
	}

	template, err := uc.templateRepo.GetByID(ctx, cmd.TemplateID)
	if err != nil {
		return nil, err
	}

	template.RecordUsage()
	if cmd.Rated {
		if err := template.RateEffectiveness(cmd.Rating); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.templateRepo.Update(ctx, template); err != nil {
		uc.logger.Errorw("failed to persist template rating", "template_id", cmd.TemplateID, "error", err)
		return nil, err
	}

	if err := uc.store.InvalidateNamespace(ctx, TemplateNamespace); err != nil {
		uc.logger.Warnw("failed to invalidate template cache", "error", err)
	}

	uc.logger.Infow("template usage recorded",
		"template_id", template.ID(),
		"usage_count", template.UsageCount(),
		"effectiveness", template.EffectivenessScore(),
	)
	return &RateTemplateResult{
		TemplateID:         template.ID(),
		UsageCount:         template.UsageCount(),
		EffectivenessScore: template.EffectivenessScore(),
	}, nil
}
