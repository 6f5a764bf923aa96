package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/resp"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/services"
)

type CustomizationController struct{ Svc *services.CustomizationService }

func NewCustomizationController(s *services.CustomizationService) *CustomizationController {
	return &CustomizationController{Svc: s}
}

// GET /admin/customizations
func (h *CustomizationController) List(c *gin.Context) {
	groups, err := h.Svc.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, groups)
}

// GET /admin/customizations/:id
func (h *CustomizationController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	group, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "customization not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, group)
}

// POST /admin/customizations
func (h *CustomizationController) Create(c *gin.Context) {
	var req services.CustomizationIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	group, err := h.Svc.Create(&req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, group)
}

// PATCH /admin/customizations/:id
func (h *CustomizationController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.CustomizationIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	group, err := h.Svc.Update(uint(id), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "customization not found")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, group)
}

// DELETE /admin/customizations/:id
func (h *CustomizationController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := h.Svc.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "customization not found")
			return
		}
		if err.Error() == "customization is attached to menu items" {
			resp.Conflict(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
