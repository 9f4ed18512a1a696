// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"encoding/json"

	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理用户注册、登录、资料管理等功能
type UserService interface {
	// SendSmsCode 发送短信验证码
	SendSmsCode(telephone string) error
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	// Login 邮箱密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// SmsLogin 短信验证码登录
	SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 刷新访问令牌
	RefreshToken(refreshToken string) (*respond.LoginRespond, error)
	// GetUserInfo 获取单个用户公开资料
	GetUserInfo(uuid string) (*respond.UserInfoRespond, error)
	// SearchUsers 按昵称前缀搜索用户
	SearchUsers(prefix string) ([]respond.UserInfoRespond, error)
	// UpdateUserInfo 更新用户资料
	UpdateUserInfo(userUuid string, req request.UpdateUserRequest) error
	// UpdateDeviceToken 更新设备推送令牌
	UpdateDeviceToken(userUuid, deviceToken string) error
}

// RoomService 房间业务接口
// 处理房间生命周期、成员关系与聊天请求
type RoomService interface {
	// CreateRoom 创建房间（去重后的成员不少于两人）
	CreateRoom(creatorUuid string, req request.CreateRoomRequest) (*respond.RoomRespond, error)
	// ListRooms 获取用户所在的全部房间
	ListRooms(userUuid string) ([]respond.RoomRespond, error)
	// ListMembers 获取房间成员资料
	ListMembers(callerUuid, roomUuid string) ([]respond.UserInfoRespond, error)
	// LeaveRoom 退出房间，剩余成员不足两人时解散房间
	LeaveRoom(userUuid, roomUuid string) error
	// FindOrCreateDirectRoom 查找两人的双人房间，没有则直接建立
	FindOrCreateDirectRoom(userUuid, otherUuid string) (*respond.RoomRespond, error)

	// SendChatRequest 发起聊天请求，对向待处理请求折叠为直接建房
	SendChatRequest(requesterUuid, targetUuid string) (*respond.ChatRequestResultRespond, error)
	// AcceptChatRequest 接受聊天请求并建立双人房间
	AcceptChatRequest(targetUuid, requesterUuid string) (*respond.RoomRespond, error)
	// RejectChatRequest 拒绝聊天请求
	RejectChatRequest(targetUuid, requesterUuid string) error
	// ListPendingChatRequests 获取发给当前用户的待处理聊天请求
	ListPendingChatRequests(targetUuid string) ([]respond.ChatRequestRespond, error)
}

// MessageService 消息业务接口
// 处理消息发送、扇出与历史分页
type MessageService interface {
	// SendMessage 发送消息并向房间其他成员扇出事件与通知
	SendMessage(senderUuid string, req request.SendMessageRequest) (*respond.MessageRespond, error)
	// ListMessages 按时间倒序分页查询房间消息
	ListMessages(callerUuid, roomUuid string, limit, offset int) (*respond.MessagePageRespond, error)
}

// NotificationService 通知业务接口
// 处理通知的持久化、实时发布与已读状态
type NotificationService interface {
	// Create 创建通知并发布到通知流，设备在线时尽力推送
	Create(userUuid, notifType string, data json.RawMessage) (*respond.NotificationRespond, error)
	// Notify 创建通知的便捷入口，失败只记日志（供其他 Service 调用）
	Notify(userUuid, notifType string, data interface{})
	// List 获取用户的全部通知，最新在前
	List(userUuid string) ([]respond.NotificationRespond, error)
	// MarkAsRead 将通知置为已读，非接收者操作返回 Forbidden
	MarkAsRead(callerUuid, notificationUuid string) error
}

// FriendService 好友业务接口
// 处理好友申请、关系建立与解除
type FriendService interface {
	// SendFriendRequest 发起好友申请，对向待处理申请折叠为直接建立关系
	SendFriendRequest(requesterUuid, targetUuid string) (*respond.FriendRequestResultRespond, error)
	// AcceptFriendRequest 接受好友申请
	AcceptFriendRequest(targetUuid, requesterUuid string) error
	// RejectFriendRequest 拒绝好友申请
	RejectFriendRequest(targetUuid, requesterUuid string) error
	// ListPendingFriendRequests 获取发给当前用户的待处理好友申请
	ListPendingFriendRequests(targetUuid string) ([]respond.FriendRequestRespond, error)
	// ListFriends 获取好友资料列表
	ListFriends(userUuid string) ([]respond.UserInfoRespond, error)
	// DeleteFriend 解除好友关系
	DeleteFriend(userUuid, friendUuid string) error
}

// FollowService 关注业务接口
type FollowService interface {
	// Follow 关注用户
	Follow(followerUuid, targetUuid string) (*respond.FollowRespond, error)
	// Unfollow 取消关注
	Unfollow(followerUuid, targetUuid string) error
	// ListFollowers 获取粉丝资料列表
	ListFollowers(userUuid string) ([]respond.UserInfoRespond, error)
	// ListFollowing 获取关注的用户资料列表
	ListFollowing(userUuid string) ([]respond.UserInfoRespond, error)
}

// StoryService 动态业务接口
type StoryService interface {
	// CreateStory 发布动态并向粉丝扇出 new_post 通知
	CreateStory(authorUuid string, req request.CreateStoryRequest) (*respond.StoryRespond, error)
	// ListStories 按时间倒序分页查询作者动态
	ListStories(authorUuid string, limit, offset int) (*respond.StoryPageRespond, error)
	// GetStory 查询单条动态
	GetStory(storyUuid string) (*respond.StoryRespond, error)
	// DeleteStory 删除动态（仅作者）
	DeleteStory(callerUuid, storyUuid string) error
}

// CommentService 评论业务接口
type CommentService interface {
	// CreateComment 发表评论
	CreateComment(authorUuid string, req request.CreateCommentRequest) (*respond.CommentRespond, error)
	// ListComments 获取动态的全部评论，最早在前
	ListComments(storyUuid string) ([]respond.CommentRespond, error)
	// DeleteComment 删除评论（评论作者或动态作者）
	DeleteComment(callerUuid, commentUuid string) error
}

// EmojiService 表情目录业务接口
type EmojiService interface {
	// ListEmojis 获取表情目录
	ListEmojis() ([]respond.EmojiRespond, error)
	// Resolve 将表情标识解析为目录项
	Resolve(ref string) (*respond.EmojiRespond, error)
}
