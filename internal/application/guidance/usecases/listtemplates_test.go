package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

func storedTemplate(t *testing.T, id uint, name string, category vo.TemplateCategory, severity *issuevo.Severity, score float64) *guidance.ResponseTemplate {
	t.Helper()
	now := time.Now().UTC()
	tmpl, err := guidance.ReconstructResponseTemplate(
		id, name, category, severity,
		"Hello {{customer_name}}", []string{"customer_name"},
		10, score, true, now, now,
	)
	require.NoError(t, err)
	return tmpl
}

func TestListTemplatesUseCase_Execute_ListsAndCaches(t *testing.T) {
	sev := issuevo.SeverityHigh
	listCalls := 0
	templateRepo := &mockTemplateRepository{
		ListActiveFunc: func(ctx context.Context, category vo.TemplateCategory, severity *issuevo.Severity, limit int) ([]*guidance.ResponseTemplate, error) {
			listCalls++
			assert.Equal(t, vo.CategoryEscalation, category)
			require.NotNil(t, severity)
			assert.Equal(t, issuevo.SeverityHigh, *severity)
			assert.Equal(t, defaultTemplateLimit, limit)
			return []*guidance.ResponseTemplate{
				storedTemplate(t, 1, "sev-high-apology", vo.CategoryEscalation, &sev, 0.9),
				storedTemplate(t, 2, "exec-escalation", vo.CategoryEscalation, nil, 0.7),
			}, nil
		},
	}
	store := cache.NewMemoryStore(100, time.Minute)
	uc := NewListTemplatesUseCase(templateRepo, store, time.Minute, &mockLogger{})

	cmd := ListTemplatesCommand{Category: "escalation", Severity: "high"}

	result, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Templates, 2)
	assert.Equal(t, "sev-high-apology", result.Templates[0].Name)
	require.NotNil(t, result.Templates[0].Severity)
	assert.Equal(t, "high", *result.Templates[0].Severity)
	assert.Nil(t, result.Templates[1].Severity)

	// The second read is served from cache.
	again, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, result.Total, again.Total)
	assert.Equal(t, 1, listCalls)
}

func TestListTemplatesUseCase_Execute_CategoryRequired(t *testing.T) {
	store := cache.NewMemoryStore(100, time.Minute)
	uc := NewListTemplatesUseCase(&mockTemplateRepository{}, store, time.Minute, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTemplatesCommand{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListTemplatesCommand{Category: "escalation", Severity: "urgent"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestListTemplatesUseCase_Execute_PropagatesRepositoryError(t *testing.T) {
	templateRepo := &mockTemplateRepository{
		ListActiveFunc: func(ctx context.Context, category vo.TemplateCategory, severity *issuevo.Severity, limit int) ([]*guidance.ResponseTemplate, error) {
			return nil, assert.AnError
		},
	}
	store := cache.NewMemoryStore(100, time.Minute)
	uc := NewListTemplatesUseCase(templateRepo, store, time.Minute, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTemplatesCommand{Category: "resolution"})
	assert.ErrorIs(t, err, assert.AnError)
}
