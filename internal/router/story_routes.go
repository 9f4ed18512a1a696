// Package router 提供 HTTP 路由注册
// 本文件定义动态和评论相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterStoryRoutes 注册动态相关路由（需要认证）
// 包括动态发布、时间线分页和评论管理
func (rt *Router) RegisterStoryRoutes(rg *gin.RouterGroup) {
	storyGroup := rg.Group("/story")
	{
		storyGroup.POST("", rt.handlers.Story.CreateStory)       // 发布动态
		storyGroup.GET("/list", rt.handlers.Story.ListStories)   // 按作者分页拉取动态
		storyGroup.GET("/:uuid", rt.handlers.Story.GetStory)     // 查询单条动态
		storyGroup.DELETE("/:uuid", rt.handlers.Story.DeleteStory) // 删除动态（级联删除评论）
	}

	commentGroup := rg.Group("/comment")
	{
		commentGroup.POST("", rt.handlers.Story.CreateComment)              // 发表评论
		commentGroup.GET("/story/:uuid", rt.handlers.Story.ListComments)    // 动态的评论列表
		commentGroup.DELETE("/:uuid", rt.handlers.Story.DeleteComment)      // 删除评论
	}
}
