// Package message 提供消息数据访问层的具体实现
package message

import (
	"nuri_social_server/internal/dao/mysql/internal"
	"nuri_social_server/internal/model"

	"gorm.io/gorm"
)

// messageRepository MessageRepository 接口的实现
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) *messageRepository {
	return &messageRepository{db: db}
}

// Create 创建新消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return internal.WrapDBError(err, "创建消息")
	}
	return nil
}

// FindByUuid 根据雪花 ID 查找消息
func (r *messageRepository) FindByUuid(uuid int64) (*model.Message, error) {
	var message model.Message
	if err := r.db.Where("uuid = ?", uuid).First(&message).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询消息 uuid=%d", uuid)
	}
	return &message, nil
}

// FindPageByRoom 按创建时间倒序分页查询房间消息
// 同一时刻的消息以雪花 ID 倒序兜底，保证分页顺序稳定
func (r *messageRepository) FindPageByRoom(roomUuid string, limit, offset int) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("room_uuid = ?", roomUuid).
		Order("created_at DESC, uuid DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "分页查询房间消息 room=%s", roomUuid)
	}
	return messages, nil
}
