// Package router 提供 HTTP 路由注册
// 本文件定义房间和聊天请求相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoomRoutes 注册房间相关路由（需要认证）
// 包括房间管理和聊天请求握手流程
func (rt *Router) RegisterRoomRoutes(rg *gin.RouterGroup) {
	roomGroup := rg.Group("/room")
	{
		roomGroup.POST("", rt.handlers.Room.CreateRoom)                  // 创建群聊房间
		roomGroup.POST("/direct", rt.handlers.Room.FindOrCreateDirectRoom) // 查找或建立双人房间
		roomGroup.GET("/list", rt.handlers.Room.ListRooms)               // 我加入的房间列表
		roomGroup.GET("/:uuid/members", rt.handlers.Room.ListMembers)    // 房间成员列表
		roomGroup.DELETE("/:uuid/members/me", rt.handlers.Room.LeaveRoom) // 退出房间
	}

	chatRequestGroup := rg.Group("/chatRequest")
	{
		chatRequestGroup.POST("", rt.handlers.Room.SendChatRequest)                 // 发起聊天请求
		chatRequestGroup.POST("/accept", rt.handlers.Room.AcceptChatRequest)        // 接受聊天请求
		chatRequestGroup.POST("/reject", rt.handlers.Room.RejectChatRequest)        // 拒绝聊天请求
		chatRequestGroup.GET("/pending", rt.handlers.Room.ListPendingChatRequests) // 待处理聊天请求
	}
}
