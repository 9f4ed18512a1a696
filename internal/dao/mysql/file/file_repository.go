// Package file 提供文件目录数据访问层的具体实现
package file

import (
	"nuri_social_server/internal/dao/mysql/internal"
	"nuri_social_server/internal/model"

	"gorm.io/gorm"
)

// fileRepository FileRepository 接口的实现
type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建 FileRepository 实例
func NewFileRepository(db *gorm.DB) *fileRepository {
	return &fileRepository{db: db}
}

// Create 创建文件记录
func (r *fileRepository) Create(file *model.FileRecord) error {
	if err := r.db.Create(file).Error; err != nil {
		return internal.WrapDBError(err, "创建文件记录")
	}
	return nil
}

// FindByUuid 根据 UUID 查找文件记录
func (r *fileRepository) FindByUuid(uuid string) (*model.FileRecord, error) {
	var file model.FileRecord
	if err := r.db.Where("uuid = ?", uuid).First(&file).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询文件记录 uuid=%s", uuid)
	}
	return &file, nil
}

// FindByUuids 批量查找文件记录
func (r *fileRepository) FindByUuids(uuids []string) ([]model.FileRecord, error) {
	if len(uuids) == 0 {
		return []model.FileRecord{}, nil
	}
	var files []model.FileRecord
	if err := r.db.Where("uuid IN ?", uuids).Find(&files).Error; err != nil {
		return nil, internal.WrapDBError(err, "批量查询文件记录")
	}
	return files, nil
}

// FindByKeyPrefix 按对象存储键前缀查找（如 emoji/）
func (r *fileRepository) FindByKeyPrefix(prefix string) ([]model.FileRecord, error) {
	var files []model.FileRecord
	if err := r.db.Where("`key` LIKE ?", prefix+"%").
		Order("`key` ASC").
		Find(&files).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "按前缀查询文件记录 prefix=%s", prefix)
	}
	return files, nil
}
