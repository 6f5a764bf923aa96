package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/resp"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/services"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/utils"
)

type MenuController struct{ Svc *services.MenuService }

func NewMenuController(s *services.MenuService) *MenuController { return &MenuController{Svc: s} }

// GET /menu?category=&q=&page=&limit=
// Storefront view, available items only.
func (h *MenuController) List(c *gin.Context) {
	out, err := h.Svc.List(queryUint(c, "category"), true, c.Query("q"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /menu/:id
func (h *MenuController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	item, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// GET /admin/menu?category=&q=&page=&limit=
// Back office view, includes unavailable items.
func (h *MenuController) ListAll(c *gin.Context) {
	out, err := h.Svc.List(queryUint(c, "category"), false, c.Query("q"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /admin/menu
func (h *MenuController) Create(c *gin.Context) {
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := h.Svc.Create(&req)
	if err != nil {
		if err.Error() == "category not found" || err.Error() == "customization not found" {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /admin/menu/:id
func (h *MenuController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := h.Svc.Update(uint(id), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, item)
}

// POST /admin/menu/:id/image
// Accepts a base64 payload, stores it under uploads/menu, and points the
// item at the served file.
func (h *MenuController) UploadImage(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	path, err := utils.SaveBase64Image(req.Image, "uploads/menu")
	if err != nil {
		resp.BadRequest(c, "invalid image payload")
		return
	}

	item, err := h.Svc.SetImage(uint(id), "/"+path)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// PATCH /admin/menu/:id/availability
func (h *MenuController) SetAvailability(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		IsAvailable *bool `json:"isAvailable" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := h.Svc.SetAvailability(uint(id), *req.IsAvailable)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// PUT /admin/menu/:id/customizations
// Replaces the attached modifier groups; an empty list detaches all.
func (h *MenuController) SetCustomizations(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		CustomizationIDs []uint `json:"customizationIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := h.Svc.SetCustomizations(uint(id), req.CustomizationIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		if err.Error() == "customization not found" {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /admin/menu/:id
func (h *MenuController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := h.Svc.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "menu item not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// ----- query helpers -----

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func queryUint(c *gin.Context, key string) uint {
	n, _ := strconv.Atoi(c.Query(key))
	if n < 0 {
		return 0
	}
	return uint(n)
}
