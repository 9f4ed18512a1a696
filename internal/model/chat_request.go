// Package model 定义数据库实体模型
// 本文件定义 1:1 聊天请求模型
package model

import "time"

// ChatRequest 聊天请求
// (requester_uuid, target_uuid) 组合唯一，同方向重复请求依赖唯一索引拦截
// 接受或拒绝后整行删除，因此不使用软删除
type ChatRequest struct {
	ID uint `gorm:"primarykey"`

	RequesterUuid string `gorm:"column:requester_uuid;uniqueIndex:idx_chat_request;type:char(36);not null;comment:发起人uuid"`
	TargetUuid    string `gorm:"column:target_uuid;uniqueIndex:idx_chat_request;index;type:char(36);not null;comment:接收人uuid"`

	CreatedAt time.Time
}

// TableName 指定表名
func (ChatRequest) TableName() string {
	return "chat_request"
}
