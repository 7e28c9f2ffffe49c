package controller

import (
	"ery_cursos_backend/internal/service"
	"ery_cursos_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

// swagger:model GradeSubmissionRequest
type GradeSubmissionRequest struct {
	Score    int    `json:"score" binding:"min=0,max=100"`
	Feedback string `json:"feedback"`
}

// GradeSubmission godoc
// @Summary Grade a pending submission
// @Tags grades
// @Accept json
// @Produce json
// @Param id path string true "submission id"
// @Param request body GradeSubmissionRequest true "grade"
// @Success 201 {object} util.Response{data=model.Grade}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/submissions/{id}/grade [post]
func (c *GradeController) GradeSubmission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var request GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grade, err := c.GradeService.GradeSubmission(ctx.Param("id"), request.Score, request.Feedback, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, grade)
}

// MyGrades godoc
// @Summary The caller's grades, optionally for one unit
// @Tags grades
// @Produce json
// @Param unit query string false "unit key"
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Router /api/grades [get]
func (c *GradeController) MyGrades(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	unitKey := ctx.Query("unit")
	grades, err := c.GradeService.StudentGrades(user.UserID, unitKey)
	if err != nil {
		respondError(ctx, err)
		return
	}

	average, count, err := c.GradeService.OverallAverage(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"grades":  grades,
		"average": average,
		"count":   count,
	})
}

// Stats godoc
// @Summary Grading totals for the admin dashboard
// @Tags grades
// @Produce json
// @Success 200 {object} util.Response{data=service.GradingStats}
// @Router /api/admin/grades/stats [get]
func (c *GradeController) Stats(ctx *gin.Context) {
	stats, err := c.GradeService.Stats()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ExportCSV godoc
// @Summary Download all grades as CSV
// @Tags grades
// @Produce text/csv
// @Success 200 {string} string "csv"
// @Router /api/admin/grades/export [get]
func (c *GradeController) ExportCSV(ctx *gin.Context) {
	data, err := c.GradeService.ExportCSV()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=grades.csv")
	ctx.Data(http.StatusOK, "text/csv", data)
}
