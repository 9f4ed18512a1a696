// Package model 定义数据库实体模型
// 本文件定义通知模型
package model

import "gorm.io/gorm"

// Notification 通知模型
// 对应数据库 notification 表
// 通知只增不删，唯一的状态变化是已读标记
type Notification struct {
	gorm.Model

	// Uuid 通知唯一标识
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:通知uuid"`

	// UserUuid 接收人
	UserUuid string `gorm:"column:user_uuid;index;type:char(36);not null;comment:接收人uuid"`

	// Type 通知类型，见 pkg/enum/notification/notification_type_enum
	Type string `gorm:"column:type;type:varchar(20);not null;comment:通知类型"`

	// Data 通知负载，按类型约定结构的 JSON
	Data string `gorm:"column:data;type:TEXT;not null;comment:通知负载"`

	// Read 已读标记
	Read bool `gorm:"column:read;not null;default:false;comment:是否已读"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notification"
}
