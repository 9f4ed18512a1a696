// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 订阅入口的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由
// 浏览器 WebSocket 无法设置 Authorization 头，连接时通过
// token 查询参数完成认证，由网关自行校验
// 请求示例: ws://host:port/ws?token=xxx
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws", rt.handlers.Ws.Subscribe)
}
