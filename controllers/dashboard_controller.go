package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/resp"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/services"
)

type DashboardController struct{ Svc *services.DashboardService }

func NewDashboardController(s *services.DashboardService) *DashboardController {
	return &DashboardController{Svc: s}
}

// GET /admin/dashboard
func (h *DashboardController) Overview(c *gin.Context) {
	out, err := h.Svc.Overview()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}
