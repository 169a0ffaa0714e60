package issue

import (
	"github.com/gin-gonic/gin"

	"github.com/aegis-support/aegis/internal/application/issue/usecases"
	"github.com/aegis-support/aegis/internal/shared/utils"
)

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddCommentRequest struct {
	Content    string `json:"content" binding:"required"`
	AuthorRole string `json:"author_role"`
	IsInternal bool   `json:"is_internal"`
}

func (r *AddCommentRequest) ToCommand(issueID, agentID uint) usecases.AddCommentCommand {
	role := r.AuthorRole
	if role == "" {
		role = "support"
	}
	return usecases.AddCommentCommand{
		IssueID:    issueID,
		AuthorID:   agentID,
		AuthorRole: role,
		Content:    r.Content,
		IsInternal: r.IsInternal,
	}
}

func parseListIssuesCommand(c *gin.Context) usecases.ListIssuesCommand {
	cmd := usecases.ListIssuesCommand{
		Status:   c.Query("status"),
		Severity: c.Query("severity"),
		Category: c.Query("category"),
		Page:     utils.ParseIntQuery(c, "page", 0),
		PageSize: utils.ParseIntQuery(c, "page_size", 0),
	}
	if v := utils.ParseIntQuery(c, "customer_id", 0); v > 0 {
		id := uint(v)
		cmd.CustomerID = &id
	}
	return cmd
}
