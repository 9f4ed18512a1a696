// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"nuri_social_server/internal/dao/mysql"
	myredis "nuri_social_server/internal/dao/redis"
	"nuri_social_server/internal/eventbus"
	"nuri_social_server/internal/infrastructure/push"
	"nuri_social_server/internal/infrastructure/sms"
	"nuri_social_server/internal/service/comment"
	"nuri_social_server/internal/service/emoji"
	"nuri_social_server/internal/service/follow"
	"nuri_social_server/internal/service/friend"
	"nuri_social_server/internal/service/message"
	"nuri_social_server/internal/service/notification"
	"nuri_social_server/internal/service/room"
	"nuri_social_server/internal/service/story"
	"nuri_social_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User         UserService         // 用户 Service
	Room         RoomService         // 房间 Service
	Message      MessageService      // 消息 Service
	Notification NotificationService // 通知 Service
	Friend       FriendService       // 好友 Service
	Follow       FollowService       // 关注 Service
	Story        StoryService        // 动态 Service
	Comment      CommentService      // 评论 Service
	Emoji        EmojiService        // 表情目录 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合、缓存、事件总线、短信与推送等基础设施实例
//  2. 先创建被依赖的 Service（通知、表情），再创建依赖它们的 Service
//  3. 返回 Services 聚合
func NewServices(
	repos *mysql.Repositories,
	cache myredis.AsyncCacheService,
	bus eventbus.Bus,
	smsService sms.SmsService,
	pushGateway push.PushGateway,
) *Services {
	notificationSvc := notification.NewNotificationService(repos, bus, pushGateway)
	emojiSvc := emoji.NewEmojiService(repos)
	memberCache := myredis.NewRoomMemberCache(cache)

	userSvc := user.NewUserService(repos, cache, smsService)
	roomSvc := room.NewRoomService(repos, notificationSvc, memberCache)
	messageSvc := message.NewMessageService(repos, bus, notificationSvc, emojiSvc, memberCache)
	friendSvc := friend.NewFriendService(repos, notificationSvc)
	followSvc := follow.NewFollowService(repos, notificationSvc)
	storySvc := story.NewStoryService(repos, notificationSvc)
	commentSvc := comment.NewCommentService(repos)

	return &Services{
		User:         userSvc,
		Room:         roomSvc,
		Message:      messageSvc,
		Notification: notificationSvc,
		Friend:       friendSvc,
		Follow:       followSvc,
		Story:        storySvc,
		Comment:      commentSvc,
		Emoji:        emojiSvc,
	}
}
