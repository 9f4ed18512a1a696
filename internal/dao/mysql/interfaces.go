// Package mysql 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的子包中
package mysql

import (
	"nuri_social_server/internal/model"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.UserInfo, error)
	// FindByTelephone 根据手机号查找用户
	FindByTelephone(telephone string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// SearchByNickname 按昵称前缀搜索用户
	SearchByNickname(prefix string, limit int) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// Update 更新用户信息
	Update(user *model.UserInfo) error
}

// CredentialRepository 凭证数据访问接口
type CredentialRepository interface {
	// FindByUserUuid 查找用户凭证
	FindByUserUuid(userUuid string) (*model.Credential, error)
	// Create 创建凭证
	Create(credential *model.Credential) error
	// UpdateDeviceToken 更新设备推送令牌
	UpdateDeviceToken(userUuid, deviceToken string) error
}

// RoomRepository 房间与成员关系数据访问接口
// 聊天请求与房间生命周期强相关，一并归入本接口
type RoomRepository interface {
	// CreateRoom 创建房间
	CreateRoom(room *model.Room) error
	// FindRoomByUuid 根据 UUID 查找房间
	FindRoomByUuid(roomUuid string) (*model.Room, error)
	// FindRoomsByUuids 批量查找房间
	FindRoomsByUuids(roomUuids []string) ([]model.Room, error)
	// DeleteRoomCascade 删除房间及其成员关系、消息
	DeleteRoomCascade(roomUuid string) error

	// AddMembers 批量插入成员关系
	AddMembers(members []model.RoomMember) error
	// RemoveMember 删除成员关系，返回受影响行数
	RemoveMember(roomUuid, userUuid string) (int64, error)
	// CountMembers 统计房间当前成员数
	CountMembers(roomUuid string) (int64, error)
	// FindMemberUserUuids 获取房间全部成员的用户 UUID
	FindMemberUserUuids(roomUuid string) ([]string, error)
	// IsMember 判断用户是否为房间当前成员
	IsMember(roomUuid, userUuid string) (bool, error)
	// FindRoomUuidsByUser 获取用户所在的全部房间 UUID
	FindRoomUuidsByUser(userUuid string) ([]string, error)
	// FindDirectRoomUuid 查找成员集合恰好为 {userA,userB} 的房间，未找到返回空串
	FindDirectRoomUuid(userA, userB string) (string, error)

	// CreateChatRequest 创建聊天请求
	CreateChatRequest(req *model.ChatRequest) error
	// FindChatRequest 查找指定方向的聊天请求
	FindChatRequest(requesterUuid, targetUuid string) (*model.ChatRequest, error)
	// DeleteChatRequest 删除聊天请求，返回受影响行数
	DeleteChatRequest(requesterUuid, targetUuid string) (int64, error)
	// FindChatRequestsByTarget 获取发给指定用户的全部待处理请求
	FindChatRequestsByTarget(targetUuid string) ([]model.ChatRequest, error)
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 创建新消息
	Create(message *model.Message) error
	// FindByUuid 根据雪花 ID 查找消息
	FindByUuid(uuid int64) (*model.Message, error)
	// FindPageByRoom 按创建时间倒序分页查询房间消息
	FindPageByRoom(roomUuid string, limit, offset int) ([]model.Message, error)
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	// Create 创建通知
	Create(notification *model.Notification) error
	// FindByUuid 根据 UUID 查找通知
	FindByUuid(uuid string) (*model.Notification, error)
	// FindByUser 获取用户的全部通知，按创建时间倒序
	FindByUser(userUuid string) ([]model.Notification, error)
	// MarkRead 将通知置为已读
	MarkRead(uuid string) error
}

// SocialRepository 好友与关注关系数据访问接口
type SocialRepository interface {
	// CreateFriend 创建好友关系（uuid 对需已按字典序归一化）
	CreateFriend(friend *model.Friend) error
	// DeleteFriend 删除好友关系，返回受影响行数
	DeleteFriend(userOneUuid, userTwoUuid string) (int64, error)
	// FindFriend 查找好友关系
	FindFriend(userOneUuid, userTwoUuid string) (*model.Friend, error)
	// FindFriendsOf 获取用户的全部好友关系
	FindFriendsOf(userUuid string) ([]model.Friend, error)

	// CreateFriendRequest 创建好友申请
	CreateFriendRequest(req *model.FriendRequest) error
	// FindFriendRequest 查找指定方向的好友申请
	FindFriendRequest(requesterUuid, targetUuid string) (*model.FriendRequest, error)
	// DeleteFriendRequest 删除好友申请，返回受影响行数
	DeleteFriendRequest(requesterUuid, targetUuid string) (int64, error)
	// FindFriendRequestsByTarget 获取发给指定用户的全部好友申请
	FindFriendRequestsByTarget(targetUuid string) ([]model.FriendRequest, error)

	// CreateFollower 创建关注关系
	CreateFollower(follower *model.Follower) error
	// DeleteFollower 删除关注关系，返回受影响行数
	DeleteFollower(followerUuid, followingUuid string) (int64, error)
	// FindFollowersOf 获取关注了指定用户的关系列表
	FindFollowersOf(userUuid string) ([]model.Follower, error)
	// FindFollowingOf 获取指定用户关注的关系列表
	FindFollowingOf(userUuid string) ([]model.Follower, error)
}

// StoryRepository 动态与评论数据访问接口
type StoryRepository interface {
	// CreateStory 创建动态
	CreateStory(story *model.Story) error
	// FindStoryByUuid 根据 UUID 查找动态
	FindStoryByUuid(uuid string) (*model.Story, error)
	// FindPageByAuthor 按创建时间倒序分页查询作者的动态
	FindPageByAuthor(authorUuid string, limit, offset int) ([]model.Story, error)
	// DeleteStoryCascade 删除动态及其评论
	DeleteStoryCascade(uuid string) error

	// CreateComment 创建评论
	CreateComment(comment *model.Comment) error
	// FindCommentByUuid 根据 UUID 查找评论
	FindCommentByUuid(uuid string) (*model.Comment, error)
	// FindCommentsByStory 获取动态的全部评论，按创建时间正序
	FindCommentsByStory(storyUuid string) ([]model.Comment, error)
	// DeleteComment 删除评论
	DeleteComment(uuid string) error
}

// FileRepository 文件目录数据访问接口
type FileRepository interface {
	// Create 创建文件记录
	Create(file *model.FileRecord) error
	// FindByUuid 根据 UUID 查找文件记录
	FindByUuid(uuid string) (*model.FileRecord, error)
	// FindByUuids 批量查找文件记录
	FindByUuids(uuids []string) ([]model.FileRecord, error)
	// FindByKeyPrefix 按对象存储键前缀查找（如 emoji/）
	FindByKeyPrefix(prefix string) ([]model.FileRecord, error)
}
