package controller

import (
	"errors"
	"ery_cursos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidInput):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrUnitNotFound),
		errors.Is(err, util.ErrAssignmentNotFound),
		errors.Is(err, util.ErrSubmissionNotFound):
		util.NotFoundResponse(ctx)
	case errors.Is(err, util.ErrStorageUnavailable):
		util.ServiceUnavailable(ctx, "storage unavailable, please retry")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrAdminEmailMismatch),
		errors.Is(err, util.ErrAlreadyGraded),
		errors.Is(err, util.ErrFileTooLarge),
		errors.Is(err, util.ErrFileTypeNotAllowed):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
