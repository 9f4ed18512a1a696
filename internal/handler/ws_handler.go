// 本文件处理 WebSocket 订阅接入
package handler

import (
	"github.com/gin-gonic/gin"

	"nuri_social_server/internal/gateway/subscription"
)

// WsHandler WebSocket 订阅接入处理器
// 认证与订阅协议由订阅网关处理，此处只做路由挂载
type WsHandler struct {
	gateway *subscription.Gateway
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(gateway *subscription.Gateway) *WsHandler {
	return &WsHandler{gateway: gateway}
}

// Subscribe WebSocket 订阅接入
// GET /ws?token=xxx
func (h *WsHandler) Subscribe(c *gin.Context) {
	h.gateway.HandleWS(c)
}
