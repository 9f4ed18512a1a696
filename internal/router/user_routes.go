// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes 注册公开路由（无需认证）
// 包括注册、登录和验证码接口
func (rt *Router) RegisterPublicRoutes(r *gin.Engine) {
	userGroup := r.Group("/user")
	{
		userGroup.POST("/register", rt.handlers.User.Register)         // 注册
		userGroup.POST("/login", rt.handlers.User.Login)               // 密码登录
		userGroup.POST("/smsLogin", rt.handlers.User.SmsLogin)         // 短信验证码登录
		userGroup.POST("/smsCode", rt.handlers.User.SendSmsCode)       // 发送短信验证码
		userGroup.POST("/refreshToken", rt.handlers.User.RefreshToken) // 刷新 Access Token
	}
}

// RegisterUserRoutes 注册用户相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/search", rt.handlers.User.SearchUsers)                // 按昵称前缀搜索用户
		userGroup.GET("/:uuid", rt.handlers.User.GetUserInfo)                 // 获取用户信息
		userGroup.PUT("/me", rt.handlers.User.UpdateUserInfo)                 // 更新个人资料
		userGroup.PUT("/me/deviceToken", rt.handlers.User.UpdateDeviceToken) // 更新推送设备令牌
	}
}
