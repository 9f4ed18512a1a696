// Package social 提供好友、好友申请与关注关系数据访问层的具体实现
package social

import (
	"nuri_social_server/internal/dao/mysql/internal"
	"nuri_social_server/internal/model"

	"gorm.io/gorm"
)

// socialRepository SocialRepository 接口的实现
type socialRepository struct {
	db *gorm.DB
}

// NewSocialRepository 创建 SocialRepository 实例
func NewSocialRepository(db *gorm.DB) *socialRepository {
	return &socialRepository{db: db}
}

// ==================== 好友关系 ====================

// CreateFriend 创建好友关系（uuid 对需已按字典序归一化）
// 重复创建触发 (user_one_uuid, user_two_uuid) 唯一索引，包装为 Conflict
func (r *socialRepository) CreateFriend(friend *model.Friend) error {
	if err := r.db.Create(friend).Error; err != nil {
		return internal.WrapDBError(err, "创建好友关系")
	}
	return nil
}

// DeleteFriend 删除好友关系，返回受影响行数
func (r *socialRepository) DeleteFriend(userOneUuid, userTwoUuid string) (int64, error) {
	res := r.db.Where("user_one_uuid = ? AND user_two_uuid = ?", userOneUuid, userTwoUuid).
		Delete(&model.Friend{})
	if res.Error != nil {
		return 0, internal.WrapDBErrorf(res.Error, "删除好友关系 one=%s two=%s", userOneUuid, userTwoUuid)
	}
	return res.RowsAffected, nil
}

// FindFriend 查找好友关系
func (r *socialRepository) FindFriend(userOneUuid, userTwoUuid string) (*model.Friend, error) {
	var friend model.Friend
	if err := r.db.Where("user_one_uuid = ? AND user_two_uuid = ?", userOneUuid, userTwoUuid).
		First(&friend).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询好友关系 one=%s two=%s", userOneUuid, userTwoUuid)
	}
	return &friend, nil
}

// FindFriendsOf 获取用户的全部好友关系
func (r *socialRepository) FindFriendsOf(userUuid string) ([]model.Friend, error) {
	var friends []model.Friend
	if err := r.db.Where("user_one_uuid = ? OR user_two_uuid = ?", userUuid, userUuid).
		Order("created_at DESC").
		Find(&friends).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询用户好友 user=%s", userUuid)
	}
	return friends, nil
}

// ==================== 好友申请 ====================

// CreateFriendRequest 创建好友申请
func (r *socialRepository) CreateFriendRequest(req *model.FriendRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return internal.WrapDBError(err, "创建好友申请")
	}
	return nil
}

// FindFriendRequest 查找指定方向的好友申请
func (r *socialRepository) FindFriendRequest(requesterUuid, targetUuid string) (*model.FriendRequest, error) {
	var req model.FriendRequest
	if err := r.db.Where("requester_uuid = ? AND target_uuid = ?", requesterUuid, targetUuid).
		First(&req).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询好友申请 requester=%s target=%s", requesterUuid, targetUuid)
	}
	return &req, nil
}

// DeleteFriendRequest 删除好友申请，返回受影响行数
func (r *socialRepository) DeleteFriendRequest(requesterUuid, targetUuid string) (int64, error) {
	res := r.db.Where("requester_uuid = ? AND target_uuid = ?", requesterUuid, targetUuid).
		Delete(&model.FriendRequest{})
	if res.Error != nil {
		return 0, internal.WrapDBErrorf(res.Error, "删除好友申请 requester=%s target=%s", requesterUuid, targetUuid)
	}
	return res.RowsAffected, nil
}

// FindFriendRequestsByTarget 获取发给指定用户的全部好友申请
func (r *socialRepository) FindFriendRequestsByTarget(targetUuid string) ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	if err := r.db.Where("target_uuid = ?", targetUuid).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询待处理好友申请 target=%s", targetUuid)
	}
	return reqs, nil
}

// ==================== 关注关系 ====================

// CreateFollower 创建关注关系
// 重复关注触发 (follower_uuid, following_uuid) 唯一索引，包装为 Conflict
func (r *socialRepository) CreateFollower(follower *model.Follower) error {
	if err := r.db.Create(follower).Error; err != nil {
		return internal.WrapDBError(err, "创建关注关系")
	}
	return nil
}

// DeleteFollower 删除关注关系，返回受影响行数
func (r *socialRepository) DeleteFollower(followerUuid, followingUuid string) (int64, error) {
	res := r.db.Where("follower_uuid = ? AND following_uuid = ?", followerUuid, followingUuid).
		Delete(&model.Follower{})
	if res.Error != nil {
		return 0, internal.WrapDBErrorf(res.Error, "删除关注关系 follower=%s following=%s", followerUuid, followingUuid)
	}
	return res.RowsAffected, nil
}

// FindFollowersOf 获取关注了指定用户的关系列表
func (r *socialRepository) FindFollowersOf(userUuid string) ([]model.Follower, error) {
	var followers []model.Follower
	if err := r.db.Where("following_uuid = ?", userUuid).
		Order("created_at DESC").
		Find(&followers).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询粉丝列表 user=%s", userUuid)
	}
	return followers, nil
}

// FindFollowingOf 获取指定用户关注的关系列表
func (r *socialRepository) FindFollowingOf(userUuid string) ([]model.Follower, error) {
	var following []model.Follower
	if err := r.db.Where("follower_uuid = ?", userUuid).
		Order("created_at DESC").
		Find(&following).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询关注列表 user=%s", userUuid)
	}
	return following, nil
}
