// Package model 定义数据库实体模型
// 本文件定义房间成员关系模型
package model

import "time"

// RoomMember 房间成员关联表
// (room_uuid, user_uuid) 组合唯一，重复入房由唯一索引兜底拦截
// 不使用软删除：退出房间后同一对键必须可以重新插入
type RoomMember struct {
	ID uint `gorm:"primarykey"`

	RoomUuid string `gorm:"column:room_uuid;uniqueIndex:idx_room_member;type:char(36);not null;comment:房间uuid"`
	UserUuid string `gorm:"column:user_uuid;uniqueIndex:idx_room_member;index;type:char(36);not null;comment:用户uuid"`

	// CreatedAt 即加入时间
	CreatedAt time.Time
}

// TableName 指定表名
func (RoomMember) TableName() string {
	return "room_member"
}
