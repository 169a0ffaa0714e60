package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	"github.com/aegis-support/aegis/internal/infrastructure/metrics"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

// TemplateNamespace caches template listings. Rating or creating a
// template invalidates the whole namespace since any listing may have
// reordered.
const TemplateNamespace = "templates"

const defaultTemplateLimit = 20

type ListTemplatesCommand struct {
	Category string
	Severity string
	Limit    int
}

type TemplateSummary struct {
	TemplateID         uint     `json:"template_id"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	Severity           *string  `json:"severity,omitempty"`
	Content            string   `json:"content"`
	Variables          []string `json:"variables"`
	UsageCount         int      `json:"usage_count"`
	EffectivenessScore float64  `json:"effectiveness_score"`
}

type ListTemplatesResult struct {
	Templates []TemplateSummary `json:"templates"`
	Total     int               `json:"total"`
}

type ListTemplatesUseCase struct {
	templateRepo guidance.TemplateRepository
	store        cache.Store
	templateTTL  time.Duration
	logger       logger.Interface
}

func NewListTemplatesUseCase(
	templateRepo guidance.TemplateRepository,
	store cache.Store,
	templateTTL time.Duration,
	logger logger.Interface,
) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{
		templateRepo: templateRepo,
		store:        store,
		templateTTL:  templateTTL,
		logger:       logger,
	}
}

func (uc *ListTemplatesUseCase) Execute(ctx context.Context, cmd ListTemplatesCommand) (*ListTemplatesResult, error) {
	category, err := vo.NewTemplateCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var severity *issuevo.Severity
	if cmd.Severity != "" {
		sev, err := issuevo.NewSeverity(cmd.Severity)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		severity = &sev
	}

	limit := cmd.Limit
	if limit <= 0 {
		limit = defaultTemplateLimit
	}

	key := fmt.Sprintf("%s:%s:%d", cmd.Category, cmd.Severity, limit)
	cached, hit, err := cache.GetJSON[ListTemplatesResult](ctx, uc.store, TemplateNamespace, key)
	if err != nil {
		uc.logger.Warnw("template cache read failed", "error", err)
	}
	metrics.ObserveCacheLookup(TemplateNamespace, hit)
	if hit {
		return &cached, nil
	}

	templates, err := uc.templateRepo.ListActive(ctx, category, severity, limit)
	if err != nil {
		uc.logger.Errorw("failed to list templates", "category", cmd.Category, "error", err)
		return nil, err
	}

	summaries := make([]TemplateSummary, 0, len(templates))
	for _, t := range templates {
		entry := TemplateSummary{
			TemplateID:         t.ID(),
			Name:               t.Name(),
			Category:           t.Category().String(),
			Content:            t.Content(),
			Variables:          t.Variables(),
			UsageCount:         t.UsageCount(),
			EffectivenessScore: t.EffectivenessScore(),
		}
		if sev := t.Severity(); sev != nil {
			s := sev.String()
			entry.Severity = &s
		}
		summaries = append(summaries, entry)
	}

	result := &ListTemplatesResult{Templates: summaries, Total: len(summaries)}
	if err := cache.PutJSON(ctx, uc.store, TemplateNamespace, key, result, uc.templateTTL); err != nil {
		uc.logger.Warnw("template cache write failed", "error", err)
	}
	return result, nil
}
