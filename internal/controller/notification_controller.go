package controller

import (
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/service"
	"ery_cursos_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// swagger:model SendNotificationRequest
type SendNotificationRequest struct {
	Title        string     `json:"title" binding:"required"`
	Message      string     `json:"message" binding:"required"`
	Recipients   []string   `json:"recipients" binding:"required,min=1"`
	Type         string     `json:"type"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

// Send godoc
// @Summary Send or schedule a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body SendNotificationRequest true "notification"
// @Success 201 {object} util.Response{data=model.Notification}
// @Failure 400 {object} util.Response
// @Router /api/admin/notifications [post]
func (c *NotificationController) Send(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var request SendNotificationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	typ := model.NotificationType(request.Type)
	if typ == "" {
		typ = model.NotifyInfo
	}

	var notification *model.Notification
	var err error
	if request.ScheduledFor != nil {
		notification, err = c.NotificationService.Schedule(request.Title, request.Message, request.Recipients, *request.ScheduledFor, typ, user.UserID)
	} else {
		notification, err = c.NotificationService.Send(request.Title, request.Message, request.Recipients, typ, user.UserID)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, notification)
}

// History godoc
// @Summary Notification history, newest first
// @Tags notifications
// @Produce json
// @Param sent query bool false "filter by sent state"
// @Param limit query int false "max rows"
// @Success 200 {object} util.Response{data=[]model.Notification}
// @Router /api/admin/notifications [get]
func (c *NotificationController) History(ctx *gin.Context) {
	var sent *bool
	if raw := ctx.Query("sent"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "sent must be a boolean")
			return
		}
		sent = &v
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	history, err := c.NotificationService.History(sent, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// MyFeed godoc
// @Summary Delivered notifications visible to the caller's role
// @Tags notifications
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Notification}
// @Router /api/notifications [get]
func (c *NotificationController) MyFeed(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	feed, err := c.NotificationService.FeedFor(user.Role, user.UserID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, feed)
}
