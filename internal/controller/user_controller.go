package controller

import (
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/service"
	"ery_cursos_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// swagger:model ChangeRoleRequest
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// swagger:model SetActiveRequest
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// Me godoc
// @Summary The caller's profile
// @Tags users
// @Produce json
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetByID(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// List godoc
// @Summary List users (admin)
// @Tags users
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.UserService.List(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// ChangeRole godoc
// @Summary Change a user's role (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "user id"
// @Param request body ChangeRoleRequest true "new role"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/users/{id}/role [put]
func (c *UserController) ChangeRole(ctx *gin.Context) {
	var request ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.ChangeRole(id, model.UserRole(request.Role)); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SetActive godoc
// @Summary Enable or disable an account (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "user id"
// @Param request body SetActiveRequest true "active flag"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/active [put]
func (c *UserController) SetActive(ctx *gin.Context) {
	var request SetActiveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.SetActive(id, *request.Active); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
