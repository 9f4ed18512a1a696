// Package room 提供房间、成员关系与聊天请求数据访问层的具体实现
package room

import (
	"nuri_social_server/internal/dao/mysql/internal"
	"nuri_social_server/internal/model"

	"gorm.io/gorm"
)

// roomRepository RoomRepository 接口的实现
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建 RoomRepository 实例
func NewRoomRepository(db *gorm.DB) *roomRepository {
	return &roomRepository{db: db}
}

// ==================== 房间 ====================

// CreateRoom 创建房间
func (r *roomRepository) CreateRoom(room *model.Room) error {
	if err := r.db.Create(room).Error; err != nil {
		return internal.WrapDBError(err, "创建房间")
	}
	return nil
}

// FindRoomByUuid 根据 UUID 查找房间
func (r *roomRepository) FindRoomByUuid(roomUuid string) (*model.Room, error) {
	var room model.Room
	if err := r.db.Where("uuid = ?", roomUuid).First(&room).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询房间 uuid=%s", roomUuid)
	}
	return &room, nil
}

// FindRoomsByUuids 批量查找房间
func (r *roomRepository) FindRoomsByUuids(roomUuids []string) ([]model.Room, error) {
	if len(roomUuids) == 0 {
		return []model.Room{}, nil
	}
	var rooms []model.Room
	if err := r.db.Where("uuid IN ?", roomUuids).Find(&rooms).Error; err != nil {
		return nil, internal.WrapDBError(err, "批量查询房间")
	}
	return rooms, nil
}

// DeleteRoomCascade 删除房间及其成员关系、消息
// 房间内的消息归房间所有，随房间一并删除
func (r *roomRepository) DeleteRoomCascade(roomUuid string) error {
	if err := r.db.Where("room_uuid = ?", roomUuid).Delete(&model.RoomMember{}).Error; err != nil {
		return internal.WrapDBErrorf(err, "删除房间成员 room=%s", roomUuid)
	}
	if err := r.db.Where("room_uuid = ?", roomUuid).Delete(&model.Message{}).Error; err != nil {
		return internal.WrapDBErrorf(err, "删除房间消息 room=%s", roomUuid)
	}
	if err := r.db.Where("uuid = ?", roomUuid).Delete(&model.Room{}).Error; err != nil {
		return internal.WrapDBErrorf(err, "删除房间 room=%s", roomUuid)
	}
	return nil
}

// ==================== 成员关系 ====================

// AddMembers 批量插入成员关系
// 重复成员触发 (room_uuid, user_uuid) 唯一索引，包装为 Conflict
func (r *roomRepository) AddMembers(members []model.RoomMember) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.db.Create(&members).Error; err != nil {
		return internal.WrapDBError(err, "插入房间成员")
	}
	return nil
}

// RemoveMember 删除成员关系，返回受影响行数
func (r *roomRepository) RemoveMember(roomUuid, userUuid string) (int64, error) {
	res := r.db.Where("room_uuid = ? AND user_uuid = ?", roomUuid, userUuid).
		Delete(&model.RoomMember{})
	if res.Error != nil {
		return 0, internal.WrapDBErrorf(res.Error, "删除房间成员 room=%s user=%s", roomUuid, userUuid)
	}
	return res.RowsAffected, nil
}

// CountMembers 统计房间当前成员数
func (r *roomRepository) CountMembers(roomUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.RoomMember{}).
		Where("room_uuid = ?", roomUuid).Count(&count).Error; err != nil {
		return 0, internal.WrapDBErrorf(err, "统计房间成员 room=%s", roomUuid)
	}
	return count, nil
}

// FindMemberUserUuids 获取房间全部成员的用户 UUID
func (r *roomRepository) FindMemberUserUuids(roomUuid string) ([]string, error) {
	var userUuids []string
	if err := r.db.Model(&model.RoomMember{}).
		Where("room_uuid = ?", roomUuid).
		Order("created_at ASC").
		Pluck("user_uuid", &userUuids).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询房间成员 room=%s", roomUuid)
	}
	return userUuids, nil
}

// IsMember 判断用户是否为房间当前成员
func (r *roomRepository) IsMember(roomUuid, userUuid string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.RoomMember{}).
		Where("room_uuid = ? AND user_uuid = ?", roomUuid, userUuid).
		Count(&count).Error; err != nil {
		return false, internal.WrapDBErrorf(err, "查询成员关系 room=%s user=%s", roomUuid, userUuid)
	}
	return count > 0, nil
}

// FindRoomUuidsByUser 获取用户所在的全部房间 UUID
func (r *roomRepository) FindRoomUuidsByUser(userUuid string) ([]string, error) {
	var roomUuids []string
	if err := r.db.Model(&model.RoomMember{}).
		Where("user_uuid = ?", userUuid).
		Pluck("room_uuid", &roomUuids).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询用户所在房间 user=%s", userUuid)
	}
	return roomUuids, nil
}

// FindDirectRoomUuid 查找成员集合恰好为 {userA,userB} 的房间
// 先按成员分组筛出两人都在的房间，再校验总成员数恰好为 2，未命中返回空串
func (r *roomRepository) FindDirectRoomUuid(userA, userB string) (string, error) {
	var candidates []string
	if err := r.db.Model(&model.RoomMember{}).
		Select("room_uuid").
		Where("user_uuid IN ?", []string{userA, userB}).
		Group("room_uuid").
		Having("COUNT(DISTINCT user_uuid) = 2").
		Pluck("room_uuid", &candidates).Error; err != nil {
		return "", internal.WrapDBErrorf(err, "查询双人房间 a=%s b=%s", userA, userB)
	}
	for _, roomUuid := range candidates {
		count, err := r.CountMembers(roomUuid)
		if err != nil {
			return "", err
		}
		if count == 2 {
			return roomUuid, nil
		}
	}
	return "", nil
}

// ==================== 聊天请求 ====================

// CreateChatRequest 创建聊天请求
// 同方向重复请求触发 (requester_uuid, target_uuid) 唯一索引，包装为 Conflict
func (r *roomRepository) CreateChatRequest(req *model.ChatRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return internal.WrapDBError(err, "创建聊天请求")
	}
	return nil
}

// FindChatRequest 查找指定方向的聊天请求
func (r *roomRepository) FindChatRequest(requesterUuid, targetUuid string) (*model.ChatRequest, error) {
	var req model.ChatRequest
	if err := r.db.Where("requester_uuid = ? AND target_uuid = ?", requesterUuid, targetUuid).
		First(&req).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询聊天请求 requester=%s target=%s", requesterUuid, targetUuid)
	}
	return &req, nil
}

// DeleteChatRequest 删除聊天请求，返回受影响行数
func (r *roomRepository) DeleteChatRequest(requesterUuid, targetUuid string) (int64, error) {
	res := r.db.Where("requester_uuid = ? AND target_uuid = ?", requesterUuid, targetUuid).
		Delete(&model.ChatRequest{})
	if res.Error != nil {
		return 0, internal.WrapDBErrorf(res.Error, "删除聊天请求 requester=%s target=%s", requesterUuid, targetUuid)
	}
	return res.RowsAffected, nil
}

// FindChatRequestsByTarget 获取发给指定用户的全部待处理请求
func (r *roomRepository) FindChatRequestsByTarget(targetUuid string) ([]model.ChatRequest, error) {
	var reqs []model.ChatRequest
	if err := r.db.Where("target_uuid = ?", targetUuid).
		Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询待处理聊天请求 target=%s", targetUuid)
	}
	return reqs, nil
}
