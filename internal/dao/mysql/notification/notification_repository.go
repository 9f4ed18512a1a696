// Package notification 提供通知数据访问层的具体实现
package notification

import (
	"nuri_social_server/internal/dao/mysql/internal"
	"nuri_social_server/internal/model"

	"gorm.io/gorm"
)

// notificationRepository NotificationRepository 接口的实现
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建 NotificationRepository 实例
func NewNotificationRepository(db *gorm.DB) *notificationRepository {
	return &notificationRepository{db: db}
}

// Create 创建通知
func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return internal.WrapDBError(err, "创建通知")
	}
	return nil
}

// FindByUuid 根据 UUID 查找通知
func (r *notificationRepository) FindByUuid(uuid string) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.Where("uuid = ?", uuid).First(&notification).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询通知 uuid=%s", uuid)
	}
	return &notification, nil
}

// FindByUser 获取用户的全部通知，按创建时间倒序
func (r *notificationRepository) FindByUser(userUuid string) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.Where("user_uuid = ?", userUuid).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询用户通知 user=%s", userUuid)
	}
	return notifications, nil
}

// MarkRead 将通知置为已读
func (r *notificationRepository) MarkRead(uuid string) error {
	if err := r.db.Model(&model.Notification{}).
		Where("uuid = ?", uuid).
		Update("read", true).Error; err != nil {
		return internal.WrapDBErrorf(err, "更新通知已读 uuid=%s", uuid)
	}
	return nil
}
