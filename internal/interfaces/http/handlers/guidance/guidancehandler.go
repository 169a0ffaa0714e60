package guidance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegis-support/aegis/internal/application/guidance/usecases"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
	"github.com/aegis-support/aegis/internal/shared/utils"
)

type GuidanceHandler struct {
	generateTemplateUC *usecases.GenerateTemplateUseCase
	summarizeUC        *usecases.SummarizeIssueUseCase
	listTemplatesUC    *usecases.ListTemplatesUseCase
	rateTemplateUC     *usecases.RateTemplateUseCase
	logger             logger.Interface
}

func NewGuidanceHandler(
	generateTemplateUC *usecases.GenerateTemplateUseCase,
	summarizeUC *usecases.SummarizeIssueUseCase,
	listTemplatesUC *usecases.ListTemplatesUseCase,
	rateTemplateUC *usecases.RateTemplateUseCase,
) *GuidanceHandler {
	return &GuidanceHandler{
		generateTemplateUC: generateTemplateUC,
		summarizeUC:        summarizeUC,
		listTemplatesUC:    listTemplatesUC,
		rateTemplateUC:     rateTemplateUC,
		logger:             logger.NewLogger(),
	}
}

// GenerateTemplate handles POST /issues/:id/guidance
func (h *GuidanceHandler) GenerateTemplate(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GenerateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for generate template", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.generateTemplateUC.Execute(c.Request.Context(), req.ToCommand(issueID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// SummarizeIssue handles POST /issues/:id/summary
func (h *GuidanceHandler) SummarizeIssue(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.summarizeUC.Execute(c.Request.Context(), usecases.SummarizeIssueCommand{IssueID: issueID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTemplates handles GET /templates
func (h *GuidanceHandler) ListTemplates(c *gin.Context) {
	cmd := usecases.ListTemplatesCommand{
		Category: c.Query("category"),
		Severity: c.Query("severity"),
		Limit:    utils.ParseIntQuery(c, "limit", 0),
	}

	result, err := h.listTemplatesUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RateTemplate handles POST /templates/:id/feedback
func (h *GuidanceHandler) RateTemplate(c *gin.Context) {
	templateID, err := utils.ParseUintParam(c, "id", "template")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for rate template", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.rateTemplateUC.Execute(c.Request.Context(), req.ToCommand(templateID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Template feedback recorded", result)
}
