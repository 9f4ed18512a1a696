// Package model 定义数据库实体模型
// 本文件定义聊天房间模型
package model

import "gorm.io/gorm"

// Room 房间模型
// 对应数据库 room 表
// 房间本身只有身份，成员关系在 RoomMember 表
type Room struct {
	gorm.Model

	// Uuid 房间唯一标识
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:房间uuid"`
}

// TableName 指定表名
func (Room) TableName() string {
	return "room"
}
