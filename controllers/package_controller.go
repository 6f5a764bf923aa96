package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/pkg/resp"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/services"
)

type PackageController struct{ Svc *services.PackageService }

func NewPackageController(s *services.PackageService) *PackageController {
	return &PackageController{Svc: s}
}

// GET /packages
// Storefront view, active packages only.
func (h *PackageController) List(c *gin.Context) {
	packs, err := h.Svc.List(true)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, packs)
}

// GET /packages/:id
func (h *PackageController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	pack, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "package not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, pack)
}

// GET /admin/packages
func (h *PackageController) ListAll(c *gin.Context) {
	packs, err := h.Svc.List(false)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, packs)
}

// POST /admin/packages
func (h *PackageController) Create(c *gin.Context) {
	var req services.PackageIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	pack, err := h.Svc.Create(&req)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, pack)
}

// PATCH /admin/packages/:id
func (h *PackageController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.PackageIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	pack, err := h.Svc.Update(uint(id), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "package not found")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, pack)
}

// DELETE /admin/packages/:id
func (h *PackageController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := h.Svc.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "package not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
