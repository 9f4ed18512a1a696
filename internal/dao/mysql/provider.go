// Package mysql 提供 Repository 层聚合与构造
package mysql

import (
	"gorm.io/gorm"

	"nuri_social_server/internal/dao/mysql/file"
	"nuri_social_server/internal/dao/mysql/message"
	"nuri_social_server/internal/dao/mysql/notification"
	"nuri_social_server/internal/dao/mysql/room"
	"nuri_social_server/internal/dao/mysql/social"
	"nuri_social_server/internal/dao/mysql/story"
	"nuri_social_server/internal/dao/mysql/user"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB
	User         UserRepository         // 用户 Repository
	Credential   CredentialRepository   // 凭证 Repository
	Room         RoomRepository         // 房间/成员/聊天请求 Repository
	Message      MessageRepository      // 消息 Repository
	Notification NotificationRepository // 通知 Repository
	Social       SocialRepository       // 好友/关注 Repository
	Story        StoryRepository        // 动态/评论 Repository
	File         FileRepository         // 文件目录 Repository
}

// NewRepositories 创建所有 Repository 实例
// 接收 GORM 数据库实例，初始化并返回 Repositories 聚合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         user.NewUserRepository(db),
		Credential:   user.NewCredentialRepository(db),
		Room:         room.NewRoomRepository(db),
		Message:      message.NewMessageRepository(db),
		Notification: notification.NewNotificationRepository(db),
		Social:       social.NewSocialRepository(db),
		Story:        story.NewStoryRepository(db),
		File:         file.NewFileRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
