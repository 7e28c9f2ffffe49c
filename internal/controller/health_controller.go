package controller

import (
	"ery_cursos_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// HealthCheck godoc
// @Summary Liveness and database connectivity check
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.ServiceUnavailable(ctx, "database handle unavailable")
		return
	}
	if err := sqlDB.Ping(); err != nil {
		util.ServiceUnavailable(ctx, "database unreachable")
		return
	}

	util.Success(ctx, gin.H{"status": "ok"})
}
