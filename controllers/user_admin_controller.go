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

type UserAdminController struct{ Svc *services.UserAdminService }

func NewUserAdminController(s *services.UserAdminService) *UserAdminController {
	return &UserAdminController{Svc: s}
}

// GET /admin/users?role=&page=&limit=
func (h *UserAdminController) List(c *gin.Context) {
	out, err := h.Svc.List(c.Query("role"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		if err.Error() == "unknown role" {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/users/:id
func (h *UserAdminController) Get(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	user, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "user not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, user)
}

// PATCH /admin/users/:id/role
func (h *UserAdminController) SetRole(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if uint(id) == utils.CurrentUserID(c) {
		resp.Forbidden(c, "cannot change your own role")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := h.Svc.SetRole(uint(id), req.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "user not found")
			return
		}
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, user)
}

// DELETE /admin/users/:id
func (h *UserAdminController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if uint(id) == utils.CurrentUserID(c) {
		resp.Forbidden(c, "cannot delete your own account")
		return
	}

	if err := h.Svc.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "user not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
