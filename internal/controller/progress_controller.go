package controller

import (
	"ery_cursos_backend/internal/service"
	"ery_cursos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// swagger:model ToggleLessonRequest
type ToggleLessonRequest struct {
	LessonKey string `json:"lessonKey" binding:"required"`
	Completed bool   `json:"completed"`
}

func currentUserID(ctx *gin.Context) uint {
	if user := util.GetUserFromContext(ctx); user != nil {
		return user.UserID
	}
	// Anonymous visitors get session-only tracking from the memory tier.
	return 0
}

// ToggleLesson godoc
// @Summary Mark a lesson complete or pending
// @Tags progress
// @Accept json
// @Produce json
// @Param unit path string true "unit key (unidad1..)"
// @Param request body ToggleLessonRequest true "toggle"
// @Success 200 {object} util.Response{data=service.ToggleResult}
// @Failure 400 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/progress/{unit}/lessons [post]
func (c *ProgressController) ToggleLesson(ctx *gin.Context) {
	var request ToggleLessonRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.ToggleLesson(
		ctx.Request.Context(),
		currentUserID(ctx),
		ctx.Param("unit"),
		request.LessonKey,
		request.Completed,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetUnitProgress godoc
// @Summary Get derived progress for one unit
// @Tags progress
// @Produce json
// @Param unit path string true "unit key"
// @Success 200 {object} util.Response{data=service.UnitProgress}
// @Router /api/progress/{unit} [get]
func (c *ProgressController) GetUnitProgress(ctx *gin.Context) {
	progress, err := c.ProgressService.UnitProgressFor(ctx.Request.Context(), currentUserID(ctx), ctx.Param("unit"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// GetOverallProgress godoc
// @Summary Get per-unit and overall completion percentages
// @Tags progress
// @Produce json
// @Success 200 {object} util.Response{data=service.OverallProgress}
// @Router /api/progress [get]
func (c *ProgressController) GetOverallProgress(ctx *gin.Context) {
	progress, err := c.ProgressService.Overall(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// CompleteUnit godoc
// @Summary Mark every lesson in a unit complete
// @Tags progress
// @Produce json
// @Param unit path string true "unit key"
// @Success 200 {object} util.Response{data=service.ToggleResult}
// @Router /api/progress/{unit}/complete [post]
func (c *ProgressController) CompleteUnit(ctx *gin.Context) {
	result, err := c.ProgressService.CompleteUnit(ctx.Request.Context(), currentUserID(ctx), ctx.Param("unit"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ResetUnit godoc
// @Summary Clear all completion facts for a unit
// @Tags progress
// @Produce json
// @Param unit path string true "unit key"
// @Success 200 {object} util.Response{data=service.UnitProgress}
// @Router /api/progress/{unit} [delete]
func (c *ProgressController) ResetUnit(ctx *gin.Context) {
	progress, err := c.ProgressService.ResetUnit(ctx.Request.Context(), currentUserID(ctx), ctx.Param("unit"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
