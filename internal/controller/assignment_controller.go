package controller

import (
	"ery_cursos_backend/internal/service"
	"ery_cursos_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// swagger:model SetDeadlineRequest
type SetDeadlineRequest struct {
	Deadline time.Time `json:"deadline" binding:"required"`
}

// swagger:model BulkDeadlineRequest
type BulkDeadlineRequest struct {
	Updates []service.DeadlineUpdate `json:"updates" binding:"required,min=1"`
}

// swagger:model UnitDeadlinesRequest
type UnitDeadlinesRequest struct {
	StartDate    time.Time `json:"startDate" binding:"required"`
	IntervalDays int       `json:"intervalDays"`
}

// List godoc
// @Summary List all assignments with deadline status
// @Tags assignments
// @Produce json
// @Success 200 {object} util.Response{data=[]service.ClassifiedAssignment}
// @Router /api/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	assignments, err := c.AssignmentService.ListWithStatus(time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Upcoming godoc
// @Summary List assignments due within the upcoming window
// @Tags assignments
// @Produce json
// @Success 200 {object} util.Response{data=[]service.ClassifiedAssignment}
// @Router /api/assignments/upcoming [get]
func (c *AssignmentController) Upcoming(ctx *gin.Context) {
	assignments, err := c.AssignmentService.Upcoming(time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Overdue godoc
// @Summary List past-deadline assignments
// @Tags assignments
// @Produce json
// @Success 200 {object} util.Response{data=[]service.ClassifiedAssignment}
// @Router /api/assignments/overdue [get]
func (c *AssignmentController) Overdue(ctx *gin.Context) {
	assignments, err := c.AssignmentService.Overdue(time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// SetDeadline godoc
// @Summary Set or move one assignment's deadline
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "assignment id"
// @Param request body SetDeadlineRequest true "deadline"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response
// @Router /api/admin/assignments/{id}/deadline [put]
func (c *AssignmentController) SetDeadline(ctx *gin.Context) {
	var request SetDeadlineRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.SetDeadline(ctx.Param("id"), request.Deadline)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// ClearDeadline godoc
// @Summary Remove one assignment's deadline
// @Tags assignments
// @Produce json
// @Param id path string true "assignment id"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/admin/assignments/{id}/deadline [delete]
func (c *AssignmentController) ClearDeadline(ctx *gin.Context) {
	assignment, err := c.AssignmentService.ClearDeadline(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// BulkUpdateDeadlines godoc
// @Summary Apply several deadline updates, reporting partial success
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body BulkDeadlineRequest true "updates"
// @Success 200 {object} util.Response{data=service.BulkResult}
// @Router /api/admin/assignments/deadlines [put]
func (c *AssignmentController) BulkUpdateDeadlines(ctx *gin.Context) {
	var request BulkDeadlineRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.AssignmentService.BulkUpdateDeadlines(request.Updates))
}

// SetUnitDeadlines godoc
// @Summary Space deadlines across a unit's weekly assignments
// @Tags assignments
// @Accept json
// @Produce json
// @Param unit path string true "unit key"
// @Param request body UnitDeadlinesRequest true "start date and interval"
// @Success 200 {object} util.Response{data=service.BulkResult}
// @Failure 400 {object} util.Response
// @Router /api/admin/assignments/units/{unit}/deadlines [put]
func (c *AssignmentController) SetUnitDeadlines(ctx *gin.Context) {
	var request UnitDeadlinesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssignmentService.SetUnitDeadlines(ctx.Param("unit"), request.StartDate, request.IntervalDays)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
