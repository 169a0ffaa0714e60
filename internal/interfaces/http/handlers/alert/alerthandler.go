package alert

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegis-support/aegis/internal/application/monitor/usecases"
	"github.com/aegis-support/aegis/internal/interfaces/http/middleware"
	"github.com/aegis-support/aegis/internal/shared/logger"
	"github.com/aegis-support/aegis/internal/shared/utils"
)

type AlertHandler struct {
	listAlertsUC  *usecases.ListActiveAlertsUseCase
	acknowledgeUC *usecases.AcknowledgeAlertUseCase
	logger        logger.Interface
}

func NewAlertHandler(
	listAlertsUC *usecases.ListActiveAlertsUseCase,
	acknowledgeUC *usecases.AcknowledgeAlertUseCase,
) *AlertHandler {
	return &AlertHandler{
		listAlertsUC:  listAlertsUC,
		acknowledgeUC: acknowledgeUC,
		logger:        logger.NewLogger(),
	}
}

// ListAlerts handles GET /alerts
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	result, err := h.listAlertsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AcknowledgeAlert handles POST /alerts/:id/acknowledge
func (h *AlertHandler) AcknowledgeAlert(c *gin.Context) {
	alertID, err := utils.ParseUintParam(c, "id", "alert")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AcknowledgeAlertCommand{
		AlertID: alertID,
		AgentID: middleware.AgentIDFromContext(c),
	}

	result, err := h.acknowledgeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert acknowledged", result)
}
