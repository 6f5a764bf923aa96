package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/resp"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/services"
)

type AdminOrderController struct {
	Repo   *repository.OrderRepository
	Svc    *services.OrderService
	Status *services.OrderStatusService
}

func NewAdminOrderController(repo *repository.OrderRepository, svc *services.OrderService, status *services.OrderStatusService) *AdminOrderController {
	return &AdminOrderController{Repo: repo, Svc: svc, Status: status}
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

type bulkStatusReq struct {
	OrderIDs []uint `json:"orderIds" binding:"required,min=1"`
	Status   string `json:"status" binding:"required"`
}

// GET /admin/orders?status=&q=&page=&limit=
func (h *AdminOrderController) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !entity.ValidStatus(entity.OrderStatus(status)) {
		resp.BadRequest(c, "unknown status")
		return
	}

	orders, total, err := h.Repo.ListOrders(entity.OrderStatus(status), c.Query("q"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders, "total": total})
}

// GET /admin/orders/:id
func (h *AdminOrderController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	detail, err := h.Svc.Detail(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, detail)
}

// PATCH /admin/orders/:id/status
func (h *AdminOrderController) UpdateStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := h.Status.UpdateStatus(c.Request.Context(), uint(id), entity.OrderStatus(req.Status))
	if err != nil {
		switch err.Error() {
		case "unknown status":
			resp.BadRequest(c, err.Error())
		case "order not found":
			resp.NotFound(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, order)
}

// PATCH /admin/orders/status
// Applies one status to many orders. Each order succeeds or fails on
// its own, the response reports both.
func (h *AdminOrderController) BulkUpdateStatus(c *gin.Context) {
	var req bulkStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	results, err := h.Status.BulkUpdateStatus(c.Request.Context(), req.OrderIDs, entity.OrderStatus(req.Status))
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"results": results})
}
