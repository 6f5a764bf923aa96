package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/resp"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/services"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/utils"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	resp.OK(c, h.Svc.View(c.Request.Context(), uid))
}

// POST /cart/items
func (h *CartController) AddItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req services.AddCartItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	view, err := h.Svc.AddItem(c.Request.Context(), uid, &req)
	if err != nil {
		switch err.Error() {
		case "menu item not found":
			resp.NotFound(c, err.Error())
		case "menu item is not available":
			resp.Conflict(c, err.Error())
		default:
			resp.BadRequest(c, err.Error())
		}
		return
	}
	resp.Created(c, view)
}

// PATCH /cart/items/:lineId
func (h *CartController) UpdateItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var req services.UpdateCartItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	view, err := h.Svc.UpdateItem(c.Request.Context(), uid, c.Param("lineId"), &req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, view)
}

// DELETE /cart/items/:lineId
func (h *CartController) RemoveItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	view, err := h.Svc.RemoveItem(c.Request.Context(), uid, c.Param("lineId"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view)
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	view, err := h.Svc.Clear(c.Request.Context(), uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/flush
// Retries a failed persist. 500 means the backend is still down,
// the in-memory cart survives either way.
func (h *CartController) Flush(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	view, err := h.Svc.Flush(c.Request.Context(), uid)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/sync
func (h *CartController) SyncNow(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.Svc.SyncNow(c.Request.Context(), uid); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"synced": true})
}

// POST /cart/sync/retry
func (h *CartController) RetrySync(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.Svc.RetryInit(c.Request.Context(), uid); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, h.Svc.SyncStatus(c.Request.Context(), uid))
}

// GET /cart/sync/status
func (h *CartController) SyncStatus(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	resp.OK(c, h.Svc.SyncStatus(c.Request.Context(), uid))
}
