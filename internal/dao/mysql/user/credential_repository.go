// Package user 提供用户相关数据访问层的具体实现
// 本文件实现凭证（密码哈希、设备令牌）的数据库操作
package user

import (
	"nuri_social_server/internal/dao/mysql/internal"
	"nuri_social_server/internal/model"

	"gorm.io/gorm"
)

// credentialRepository CredentialRepository 接口的实现
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository 创建 CredentialRepository 实例
func NewCredentialRepository(db *gorm.DB) *credentialRepository {
	return &credentialRepository{db: db}
}

// FindByUserUuid 查找用户凭证
func (r *credentialRepository) FindByUserUuid(userUuid string) (*model.Credential, error) {
	var credential model.Credential
	if err := r.db.Where("user_uuid = ?", userUuid).First(&credential).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询凭证 user=%s", userUuid)
	}
	return &credential, nil
}

// Create 创建凭证
func (r *credentialRepository) Create(credential *model.Credential) error {
	if err := r.db.Create(credential).Error; err != nil {
		return internal.WrapDBError(err, "创建凭证")
	}
	return nil
}

// UpdateDeviceToken 更新设备推送令牌
func (r *credentialRepository) UpdateDeviceToken(userUuid, deviceToken string) error {
	if err := r.db.Model(&model.Credential{}).
		Where("user_uuid = ?", userUuid).
		Update("device_token", deviceToken).Error; err != nil {
		return internal.WrapDBErrorf(err, "更新设备令牌 user=%s", userUuid)
	}
	return nil
}
