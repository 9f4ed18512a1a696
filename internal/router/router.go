// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"nuri_social_server/internal/handler"
	"nuri_social_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器
// 持有 Handler 聚合对象，按模块注册路由
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 公开路由直接挂在引擎上，业务路由统一经过 JWT 认证中间件
func (rt *Router) RegisterRoutes(engine *gin.Engine) {
	// 公开接口（无需认证）
	rt.RegisterPublicRoutes(engine)

	// WebSocket 入口（连接时通过 token 参数自行认证）
	rt.RegisterWebSocketRoutes(engine)

	// 需要认证的业务接口
	authed := engine.Group("/")
	authed.Use(middleware.JWTAuth())
	{
		rt.RegisterUserRoutes(authed)
		rt.RegisterRoomRoutes(authed)
		rt.RegisterMessageRoutes(authed)
		rt.RegisterNotificationRoutes(authed)
		rt.RegisterSocialRoutes(authed)
		rt.RegisterStoryRoutes(authed)
	}
}
