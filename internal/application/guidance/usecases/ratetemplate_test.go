package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/cache"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

func TestRateTemplateUseCase_Execute_RecordsUsageAndRating(t *testing.T) {
	tmpl := storedTemplate(t, 5, "first-touch", vo.CategoryInitialResponse, nil, 0.6)
	var updated *guidance.ResponseTemplate
	templateRepo := &mockTemplateRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*guidance.ResponseTemplate, error) {
			return tmpl, nil
		},
		UpdateFunc: func(ctx context.Context, template *guidance.ResponseTemplate) error {
			updated = template
			return nil
		},
	}
	store := cache.NewMemoryStore(100, time.Minute)
	ctx := context.Background()

	// A cached listing that the rating must displace.
	require.NoError(t, store.Put(ctx, TemplateNamespace, "initial_response::20", []byte(`{}`), time.Minute))

	uc := NewRateTemplateUseCase(templateRepo, store, &mockLogger{})
	result, err := uc.Execute(ctx, RateTemplateCommand{TemplateID: 5, Rating: 1.0, Rated: true})
	require.NoError(t, err)

	assert.Equal(t, 11, result.UsageCount)
	// Moving average of 0.6 and 1.0.
	assert.InDelta(t, 0.8, result.EffectivenessScore, 1e-9)
	require.NotNil(t, updated)
	assert.Equal(t, 11, updated.UsageCount())

	_, hit, err := store.Get(ctx, TemplateNamespace, "initial_response::20")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRateTemplateUseCase_Execute_UsageOnly(t *testing.T) {
	tmpl := storedTemplate(t, 5, "first-touch", vo.CategoryInitialResponse, nil, 0.6)
	templateRepo := &mockTemplateRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*guidance.ResponseTemplate, error) {
			return tmpl, nil
		},
	}
	store := cache.NewMemoryStore(100, time.Minute)
	uc := NewRateTemplateUseCase(templateRepo, store, &mockLogger{})

	result, err := uc.Execute(context.Background(), RateTemplateCommand{TemplateID: 5})
	require.NoError(t, err)

	assert.Equal(t, 11, result.UsageCount)
	assert.InDelta(t, 0.6, result.EffectivenessScore, 1e-9)
}

func TestRateTemplateUseCase_Execute_RatingOutOfRange(t *testing.T) {
	tmpl := storedTemplate(t, 5, "first-touch", vo.CategoryInitialResponse, nil, 0.6)
	templateRepo := &mockTemplateRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*guidance.ResponseTemplate, error) {
			return tmpl, nil
		},
	}
	store := cache.NewMemoryStore(100, time.Minute)
	uc := NewRateTemplateUseCase(templateRepo, store, &mockLogger{})

	_, err := uc.Execute(context.Background(), RateTemplateCommand{TemplateID: 5, Rating: 1.5, Rated: true})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestRateTemplateUseCase_Execute_NotFound(t *testing.T) {
	templateRepo := &mockTemplateRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*guidance.ResponseTemplate, error) {
			return nil, apperrors.NewNotFoundError("template not found")
		},
	}
	store := cache.NewMemoryStore(100, time.Minute)
	uc := NewRateTemplateUseCase(templateRepo, store, &mockLogger{})

	_, err := uc.Execute(context.Background(), RateTemplateCommand{TemplateID: 404})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestRateTemplateUseCase_Execute_ValidationError(t *testing.T) {
	store := cache.NewMemoryStore(100, time.Minute)
	uc := NewRateTemplateUseCase(&mockTemplateRepository{}, store, &mockLogger{})

	_, err := uc.Execute(context.Background(), RateTemplateCommand{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
