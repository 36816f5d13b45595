// internal/handlers/notification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lotkeeper/carstock-backend/internal/services"
	"github.com/lotkeeper/carstock-backend/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /notifications
//
// The UI polls this for the transient notices mutations produce; the
// service expires each one a few seconds after it is posted.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	utils.SuccessResponse(c, h.notificationService.Active())
}
