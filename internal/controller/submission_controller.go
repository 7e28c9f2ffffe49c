package controller

import (
	"ery_cursos_backend/internal/service"
	"ery_cursos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// Upload godoc
// @Summary Upload a file for an assignment
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param assignmentId formData string true "assignment id"
// @Param file formData file true "document or image, max 10MB"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response
// @Router /api/submissions [post]
func (c *SubmissionController) Upload(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	assignmentID := ctx.PostForm("assignmentId")
	if assignmentID == "" {
		util.BadRequest(ctx, "assignmentId is required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	submission, err := c.SubmissionService.Submit(
		ctx.Request.Context(),
		user.UserID,
		assignmentID,
		fileHeader.Filename,
		fileHeader.Size,
		file,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, submission)
}

// MySubmissions godoc
// @Summary The caller's submissions, newest first
// @Tags submissions
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/submissions [get]
func (c *SubmissionController) MySubmissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	submissions, err := c.SubmissionService.ListMine(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// Pending godoc
// @Summary Ungraded submissions for the grading queue
// @Tags submissions
// @Produce json
// @Param unit query string false "unit key"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/admin/submissions/pending [get]
func (c *SubmissionController) Pending(ctx *gin.Context) {
	pending, err := c.SubmissionService.ListPending(ctx.Query("unit"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, pending)
}
