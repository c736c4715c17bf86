package user

import (
	"net/http"

	"github.com/Hazemprogammar/SudanEdu/internal/controller"
	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/service"
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications godoc
// @Summary List the user's notifications
// @Description Most recent first.
// @Tags Notifications
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} dto.NotificationResponse
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return
	}

	notifications, err := c.notificationService.List(userID)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve notifications", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead godoc
// @Summary Mark a notification as read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkNotificationRead(ctx *gin.Context) {
	if err := c.notificationService.MarkRead(ctx.Param("id")); err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
