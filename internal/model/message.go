// Package model 定义数据库实体模型
// 本文件定义消息模型，用于存储房间内的聊天消息
package model

import "gorm.io/gorm"

// Message 消息模型
// 对应数据库 message 表
// 消息创建后不可修改，随房间删除一并清理
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识，雪花算法生成的 int64
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// RoomUuid 消息所属房间
	RoomUuid string `gorm:"column:room_uuid;index;type:char(36);not null;comment:房间uuid"`

	// SenderUuid 发送者
	SenderUuid string `gorm:"column:sender_uuid;index;type:char(36);not null;comment:发送者uuid"`

	// Type 消息类型，text 或 emoji
	Type string `gorm:"column:type;type:varchar(10);not null;comment:消息类型"`

	// Content 消息内容
	// text 类型存纯文本；emoji 类型存解析后的 {"id":...,"key":...} JSON
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
