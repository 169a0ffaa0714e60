package issue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegis-support/aegis/internal/application/issue/usecases"
	"github.com/aegis-support/aegis/internal/interfaces/http/middleware"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
	"github.com/aegis-support/aegis/internal/shared/utils"
)

type IssueHandler struct {
	getIssueUC     *usecases.GetIssueUseCase
	listIssuesUC   *usecases.ListIssuesUseCase
	updateStatusUC *usecases.UpdateIssueStatusUseCase
	addCommentUC   *usecases.AddCommentUseCase
	logger         logger.Interface
}

func NewIssueHandler(
	getIssueUC *usecases.GetIssueUseCase,
	listIssuesUC *usecases.ListIssuesUseCase,
	updateStatusUC *usecases.UpdateIssueStatusUseCase,
	addCommentUC *usecases.AddCommentUseCase,
) *IssueHandler {
	return &IssueHandler{
		getIssueUC:     getIssueUC,
		listIssuesUC:   listIssuesUC,
		updateStatusUC: updateStatusUC,
		addCommentUC:   addCommentUC,
		logger:         logger.NewLogger(),
	}
}

// ListIssues handles GET /issues
func (h *IssueHandler) ListIssues(c *gin.Context) {
	cmd := parseListIssuesCommand(c)

	result, err := h.listIssuesUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Issues, result.Total, result.Page, result.PageSize)
}

// GetIssue handles GET /issues/:id
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.GetIssueCommand{
		IssueID:      issueID,
		WithComments: c.Query("with_comments") == "true",
	}

	result, err := h.getIssueUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateStatus handles PATCH /issues/:id/status
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update status", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	cmd := usecases.UpdateIssueStatusCommand{IssueID: issueID, NewStatus: req.Status}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Issue status updated", result)
}

// AddComment handles POST /issues/:id/comments
func (h *IssueHandler) AddComment(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	agentID := middleware.AgentIDFromContext(c)

	result, err := h.addCommentUC.Execute(c.Request.Context(), req.ToCommand(issueID, agentID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added")
}
