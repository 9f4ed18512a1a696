// Package model 定义数据库实体模型
// 本文件定义文件目录模型（表情、动态附件等引用的文件元数据）
package model

import "gorm.io/gorm"

// FileRecord 文件记录
// 只存元数据，文件内容由外部对象存储托管
type FileRecord struct {
	gorm.Model

	// Uuid 文件唯一标识
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:文件uuid"`

	// Key 对象存储中的键，如 emoji/smile.png
	Key string `gorm:"column:key;type:varchar(255);not null;comment:对象存储键"`

	// Type MIME 类型
	Type string `gorm:"column:type;type:varchar(50);comment:MIME类型"`

	// Size 文件大小（字节）
	Size int64 `gorm:"column:size;comment:文件大小"`
}

// TableName 指定表名
func (FileRecord) TableName() string {
	return "file_record"
}
