// 本文件处理通知相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"nuri_social_server/internal/infrastructure/middleware"
	"nuri_social_server/internal/service"
)

// NotificationHandler 通知请求处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListNotifications 获取当前用户的通知列表
// GET /notification/list
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	data, err := h.notificationSvc.List(middleware.CurrentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkAsRead 将通知置为已读
// PUT /notification/:uuid/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	if err := h.notificationSvc.MarkAsRead(middleware.CurrentUserId(c), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
