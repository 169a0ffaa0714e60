package analysis

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegis-support/aegis/internal/application/analysis/usecases"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
	"github.com/aegis-support/aegis/internal/shared/utils"
)

type AnalysisHandler struct {
	analyzeUC *usecases.AnalyzeIssueUseCase
	similarUC *usecases.FindSimilarIssuesUseCase
	historyUC *usecases.GetCustomerHistoryUseCase
	logger    logger.Interface
}

func NewAnalysisHandler(
	analyzeUC *usecases.AnalyzeIssueUseCase,
	similarUC *usecases.FindSimilarIssuesUseCase,
	historyUC *usecases.GetCustomerHistoryUseCase,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzeUC: analyzeUC,
		similarUC: similarUC,
		historyUC: historyUC,
		logger:    logger.NewLogger(),
	}
}

// AnalyzeIssue handles POST /analysis/issues
func (h *AnalysisHandler) AnalyzeIssue(c *gin.Context) {
	var req AnalyzeIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for analyze issue", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.analyzeUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Issue analyzed")
}

// FindSimilarIssues handles GET /issues/:id/similar
func (h *AnalysisHandler) FindSimilarIssues(c *gin.Context) {
	issueID, err := utils.ParseUintParam(c, "id", "issue")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.FindSimilarIssuesCommand{
		IssueID: issueID,
		Limit:   utils.ParseIntQuery(c, "limit", 0),
	}

	result, err := h.similarUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetCustomerHistory handles GET /customers/:id/history
func (h *AnalysisHandler) GetCustomerHistory(c *gin.Context) {
	customerID, err := utils.ParseUintParam(c, "id", "customer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.historyUC.Execute(c.Request.Context(), usecases.GetCustomerHistoryCommand{CustomerID: customerID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
