package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

func createTestTemplate(t *testing.T, name string, category vo.TemplateCategory, severity *issuevo.Severity) *guidance.ResponseTemplate {
	t.Helper()
	tpl, err := guidance.NewResponseTemplate(
		name, category, severity,
		"Dear {{customer_name}}, we are on it.",
		[]string{"customer_name"},
	)
	require.NoError(t, err)
	return tpl
}

func TestTemplateRepository_SaveAndGet(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	tpl := createTestTemplate(t, "initial", vo.CategoryInitialResponse, nil)
	require.NoError(t, repo.Save(ctx, tpl))
	assert.NotZero(t, tpl.ID())

	found, err := repo.GetByID(ctx, tpl.ID())
	require.NoError(t, err)
	assert.Equal(t, tpl.Name(), found.Name())
	assert.Equal(t, []string{"customer_name"}, found.Variables())
	assert.Nil(t, found.Severity())
	assert.True(t, found.IsActive())
}

func TestTemplateRepository_ListActive_RanksByEffectiveness(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	weak := createTestTemplate(t, "weak", vo.CategoryEscalation, nil)
	require.NoError(t, repo.Save(ctx, weak))
	require.NoError(t, weak.RateEffectiveness(0.2))
	require.NoError(t, repo.Update(ctx, weak))

	strong := createTestTemplate(t, "strong", vo.CategoryEscalation, nil)
	require.NoError(t, repo.Save(ctx, strong))
	require.NoError(t, strong.RateEffectiveness(0.9))
	require.NoError(t, repo.Update(ctx, strong))

	inactive := createTestTemplate(t, "retired", vo.CategoryEscalation, nil)
	require.NoError(t, repo.Save(ctx, inactive))
	inactive.Deactivate()
	require.NoError(t, repo.Update(ctx, inactive))

	templates, err := repo.ListActive(ctx, vo.CategoryEscalation, nil, 3)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "strong", templates[0].Name())
	assert.Equal(t, "weak", templates[1].Name())
}

func TestTemplateRepository_ListActive_SeverityFilter(t *testing.T) {
	repo := NewTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	critical := issuevo.SeverityCritical
	low := issuevo.SeverityLow

	require.NoError(t, repo.Save(ctx, createTestTemplate(t, "critical only", vo.CategoryInitialResponse, &critical)))
	require.NoError(t, repo.Save(ctx, createTestTemplate(t, "low only", vo.CategoryInitialResponse, &low)))
	require.NoError(t, repo.Save(ctx, createTestTemplate(t, "any severity", vo.CategoryInitialResponse, nil)))

	templates, err := repo.ListActive(ctx, vo.CategoryInitialResponse, &critical, 10)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	names := []string{templates[0].Name(), templates[1].Name()}
	assert.Contains(t, names, "critical only")
	assert.Contains(t, names, "any severity")
}

func TestSummaryRepository_LatestWins(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSummaryRepository(database)
	ctx := context.Background()

	_, err := repo.GetLatestByIssueID(ctx, 10)
	assert.True(t, apperrors.IsNotFoundError(err))

	older, err := guidance.NewSummary(10, "first pass", nil, nil, guidance.ConversationMetrics{TotalMessages: 2}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, older))

	newer, err := guidance.NewSummary(10, "second pass", []string{"root cause found"}, nil, guidance.ConversationMetrics{TotalMessages: 5}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newer))

	// Force distinct created_at ordering; both saves can land in the
	// same millisecond.
	err = database.Exec("UPDATE issue_summaries SET created_at = created_at + 1000 WHERE id = ?", newer.ID()).Error
	require.NoError(t, err)

	latest, err := repo.GetLatestByIssueID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "second pass", latest.SummaryText())
	assert.Equal(t, []string{"root cause found"}, latest.KeyPoints())
	assert.Equal(t, 5, latest.Metrics().TotalMessages)
}
