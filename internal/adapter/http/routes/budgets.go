package routes

import (
	"oficina_motos/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathBudgets = "/budgets"
)

func addBudgetRoutes(rg *gin.RouterGroup, h *handlers.BudgetHandler) {
	budgets := rg.Group(PathBudgets)
	{
		budgets.POST("", h.CreateBudget)
		budgets.GET("", h.ListBudgets)
		budgets.GET("/:id", h.GetBudget)
		budgets.PATCH("/:id", h.UpdateBudget)
		budgets.DELETE("/:id", h.DeleteBudget)

		// Workflow transitions.
		budgets.POST("/:id/approve", h.ApproveBudget)
		budgets.POST("/:id/reject", h.RejectBudget)
		budgets.POST("/:id/convert", h.ConvertBudget)
	}
}
