package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
)

// TemplateMapper handles the conversion between guidance domain entities and persistence models.
type TemplateMapper interface {
	ToModel(t *guidance.ResponseTemplate) *models.ResponseTemplateModel
	ToDomain(model *models.ResponseTemplateModel) (*guidance.ResponseTemplate, error)
	SummaryToModel(s *guidance.Summary) *models.SummaryModel
	SummaryToDomain(model *models.SummaryModel) (*guidance.Summary, error)
}

type TemplateMapperImpl struct{}

func NewTemplateMapper() TemplateMapper {
	return &TemplateMapperImpl{}
}

func (m *TemplateMapperImpl) ToModel(t *guidance.ResponseTemplate) *models.ResponseTemplateModel {
	model := &models.ResponseTemplateModel{
		ID:                 t.ID(),
		Name:               t.Name(),
		Category:           t.Category().String(),
		Content:            t.Content(),
		UsageCount:         t.UsageCount(),
		EffectivenessScore: t.EffectivenessScore(),
		IsActive:           t.IsActive(),
		CreatedAt:          t.CreatedAt().UnixMilli(),
		UpdatedAt:          t.UpdatedAt().UnixMilli(),
	}

	if t.Severity() != nil {
		sev := t.Severity().String()
		model.Severity = &sev
	}

	if vars := t.Variables(); len(vars) > 0 {
		varsJSON, _ := json.Marshal(vars)
		model.Variables = string(varsJSON)
	}

	return model
}

func (m *TemplateMapperImpl) ToDomain(model *models.ResponseTemplateModel) (*guidance.ResponseTemplate, error) {
	category, err := vo.NewTemplateCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category for template %d: %w", model.ID, err)
	}

	var severity *issuevo.Severity
	if model.Severity != nil {
		sev, err := issuevo.NewSeverity(*model.Severity)
		if err != nil {
			return nil, fmt.Errorf("invalid severity for template %d: %w", model.ID, err)
		}
		severity = &sev
	}

	var variables []string
	if model.Variables != "" {
		if err := json.Unmarshal([]byte(model.Variables), &variables); err != nil {
			return nil, fmt.Errorf("failed to unmarshal template variables (id=%d): %w", model.ID, err)
		}
	}

	return guidance.ReconstructResponseTemplate(
		model.ID,
		model.Name,
		category,
		severity,
		model.Content,
		variables,
		model.UsageCount,
		model.EffectivenessScore,
		model.IsActive,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}

func (m *TemplateMapperImpl) SummaryToModel(s *guidance.Summary) *models.SummaryModel {
	model := &models.SummaryModel{
		ID:                s.ID(),
		IssueID:           s.IssueID(),
		SummaryText:       s.SummaryText(),
		ResolutionSummary: s.ResolutionSummary(),
		CreatedAt:         s.CreatedAt().UnixMilli(),
	}

	if points := s.KeyPoints(); len(points) > 0 {
		pointsJSON, _ := json.Marshal(points)
		model.KeyPoints = string(pointsJSON)
	}
	if items := s.ActionItems(); len(items) > 0 {
		itemsJSON, _ := json.Marshal(items)
		model.ActionItems = string(itemsJSON)
	}

	metricsJSON, _ := json.Marshal(s.Metrics())
	model.Metrics = string(metricsJSON)

	return model
}

func (m *TemplateMapperImpl) SummaryToDomain(model *models.SummaryModel) (*guidance.Summary, error) {
	var keyPoints, actionItems []string
	if model.KeyPoints != "" {
		if err := json.Unmarshal([]byte(model.KeyPoints), &keyPoints); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary key points (id=%d): %w", model.ID, err)
		}
	}
	if model.ActionItems != "" {
		if err := json.Unmarshal([]byte(model.ActionItems), &actionItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary action items (id=%d): %w", model.ID, err)
		}
	}

	var metrics guidance.ConversationMetrics
	if model.Metrics != "" {
		if err := json.Unmarshal([]byte(model.Metrics), &metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary metrics (id=%d): %w", model.ID, err)
		}
	}

	return guidance.ReconstructSummary(
		model.ID,
		model.IssueID,
		model.SummaryText,
		keyPoints,
		actionItems,
		metrics,
		model.ResolutionSummary,
		convertMillisToTime(model.CreatedAt),
	)
}
