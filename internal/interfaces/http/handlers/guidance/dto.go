package guidance

import (
	"github.com/aegis-support/aegis/internal/application/guidance/usecases"
)

type GenerateTemplateRequest struct {
	MessageContent string `json:"message_content" binding:"required"`
	Context        string `json:"context"`
}

func (r *GenerateTemplateRequest) ToCommand(issueID uint) usecases.GenerateTemplateCommand {
	return usecases.GenerateTemplateCommand{
		IssueID:        issueID,
		MessageContent: r.MessageContent,
		Context:        r.Context,
	}
}

type RateTemplateRequest struct {
	// Rating is optional; when present it must be in [0, 1].
	Rating *float64 `json:"rating"`
}

func (r *RateTemplateRequest) ToCommand(templateID uint) usecases.RateTemplateCommand {
	cmd := usecases.RateTemplateCommand{TemplateID: templateID}
	if r.Rating != nil {
		cmd.Rating = *r.Rating
		cmd.Rated = true
	}
	return cmd
}
