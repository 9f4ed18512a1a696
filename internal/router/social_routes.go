// Package router 提供 HTTP 路由注册
// 本文件定义好友和关注相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterSocialRoutes 注册社交关系相关路由（需要认证）
// 包括好友申请、好友关系和关注关系
func (rt *Router) RegisterSocialRoutes(rg *gin.RouterGroup) {
	friendRequestGroup := rg.Group("/friendRequest")
	{
		friendRequestGroup.POST("", rt.handlers.Friend.SendFriendRequest)                 // 发起好友申请
		friendRequestGroup.POST("/accept", rt.handlers.Friend.AcceptFriendRequest)        // 通过好友申请
		friendRequestGroup.POST("/reject", rt.handlers.Friend.RejectFriendRequest)        // 拒绝好友申请
		friendRequestGroup.GET("/pending", rt.handlers.Friend.ListPendingFriendRequests) // 待处理好友申请
	}

	friendGroup := rg.Group("/friend")
	{
		friendGroup.GET("/list", rt.handlers.Friend.ListFriends)      // 好友列表
		friendGroup.DELETE("/:uuid", rt.handlers.Friend.DeleteFriend) // 删除好友
	}

	followGroup := rg.Group("/follow")
	{
		followGroup.POST("", rt.handlers.Follow.Follow)                    // 关注用户
		followGroup.DELETE("/:uuid", rt.handlers.Follow.Unfollow)          // 取消关注
		followGroup.GET("/followers", rt.handlers.Follow.ListFollowers)    // 我的粉丝列表
		followGroup.GET("/following", rt.handlers.Follow.ListFollowing)    // 我的关注列表
	}
}
