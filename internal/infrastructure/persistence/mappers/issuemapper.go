package mappers

import (
	"fmt"
	"time"

	"github.com/aegis-support/aegis/internal/domain/issue"
	vo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/persistence/models"
)

// IssueMapper handles the conversion between Issue domain entities and persistence models.
type IssueMapper interface {
	ToModel(i *issue.Issue) *models.IssueModel
	ToDomain(model *models.IssueModel) (*issue.Issue, error)
	CommentToModel(c *issue.Comment) *models.IssueCommentModel
	CommentToDomain(model *models.IssueCommentModel) (*issue.Comment, error)
}

type IssueMapperImpl struct{}

func NewIssueMapper() IssueMapper {
	return &IssueMapperImpl{}
}

func (m *IssueMapperImpl) ToModel(i *issue.Issue) *models.IssueModel {
	model := &models.IssueModel{
		ID:              i.ID(),
		CustomerID:      i.CustomerID(),
		Title:           i.Title(),
		Description:     i.Description(),
		Category:        i.Category().String(),
		Severity:        i.Severity().String(),
		Status:          i.Status().String(),
		ProductArea:     i.ProductArea(),
		Priority:        i.Priority(),
		StatusChangedAt: i.StatusChangedAt().UnixMilli(),
		CreatedAt:       i.CreatedAt().UnixMilli(),
		UpdatedAt:       i.UpdatedAt().UnixMilli(),
	}

	if i.ResolvedAt() != nil {
		resolved := i.ResolvedAt().UnixMilli()
		model.ResolvedAt = &resolved
	}

	return model
}

// ToDomain converts an issue persistence model to a domain entity.
// Comments must be loaded separately by the repository.
func (m *IssueMapperImpl) ToDomain(model *models.IssueModel) (*issue.Issue, error) {
	category, err := vo.NewCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category for issue %d: %w", model.ID, err)
	}
	severity, err := vo.NewSeverity(model.Severity)
	if err != nil {
		return nil, fmt.Errorf("invalid severity for issue %d: %w", model.ID, err)
	}
	status, err := vo.NewIssueStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status for issue %d: %w", model.ID, err)
	}

	var resolvedAt *time.Time
	if model.ResolvedAt != nil {
		t := convertMillisToTime(*model.ResolvedAt)
		resolvedAt = &t
	}

	return issue.ReconstructIssue(
		model.ID,
		model.CustomerID,
		model.Title,
		model.Description,
		category,
		severity,
		status,
		model.ProductArea,
		model.Priority,
		convertMillisToTime(model.StatusChangedAt),
		resolvedAt,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}

func (m *IssueMapperImpl) CommentToModel(c *issue.Comment) *models.IssueCommentModel {
	return &models.IssueCommentModel{
		ID:         c.ID(),
		IssueID:    c.IssueID(),
		AuthorID:   c.AuthorID(),
		AuthorRole: c.AuthorRole(),
		Content:    c.Content(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt().UnixMilli(),
	}
}

func (m *IssueMapperImpl) CommentToDomain(model *models.IssueCommentModel) (*issue.Comment, error) {
	return issue.ReconstructComment(
		model.ID,
		model.IssueID,
		model.AuthorID,
		model.AuthorRole,
		model.Content,
		model.IsInternal,
		convertMillisToTime(model.CreatedAt),
	)
}

func convertMillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}
