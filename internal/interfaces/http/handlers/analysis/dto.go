package analysis

import (
	"github.com/aegis-support/aegis/internal/application/analysis/usecases"
)

type AnalyzeIssueRequest struct {
	CustomerID  uint   `json:"customer_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	ProductArea string `json:"product_area"`
}

func (r *AnalyzeIssueRequest) ToCommand() usecases.AnalyzeIssueCommand {
	return usecases.AnalyzeIssueCommand{
		CustomerID:  r.CustomerID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		ProductArea: r.ProductArea,
	}
}
