// 本文件处理消息相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/infrastructure/middleware"
	"nuri_social_server/internal/service"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendMessage 发送消息
// POST /message
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.SendMessage(middleware.CurrentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListMessages 分页查询房间消息
// GET /message/room/:uuid?limit=20&offset=0
func (h *MessageHandler) ListMessages(c *gin.Context) {
	var req request.ListMessagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.ListMessages(middleware.CurrentUserId(c), c.Param("uuid"), req.Limit, req.Offset)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
