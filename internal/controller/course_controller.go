package controller

import (
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CourseController serves the unit catalog the course pages render.
type CourseController struct {
	UnitRepo *repository.UnitRepository
}

func NewCourseController(unitRepo *repository.UnitRepository) *CourseController {
	return &CourseController{UnitRepo: unitRepo}
}

// ListUnits godoc
// @Summary List course units in order
// @Tags course
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Unit}
// @Router /api/units [get]
func (c *CourseController) ListUnits(ctx *gin.Context) {
	units, err := c.UnitRepo.ListOrdered()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, units)
}

// GetUnit godoc
// @Summary One unit with its weekly assignments
// @Tags course
// @Produce json
// @Param key path string true "unit key"
// @Success 200 {object} util.Response{data=model.Unit}
// @Failure 404 {object} util.Response
// @Router /api/units/{key} [get]
func (c *CourseController) GetUnit(ctx *gin.Context) {
	unit, err := c.UnitRepo.FindByKey(ctx.Param("key"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, unit)
}
