// Package model 定义数据库实体模型
// 本文件定义好友关系和好友申请模型
package model

import "time"

// Friend 好友关系
// 存储时按字典序归一化 (UserOneUuid < UserTwoUuid)，保证一对好友只有一行
// 解除好友后整行删除，不使用软删除
type Friend struct {
	ID uint `gorm:"primarykey"`

	UserOneUuid string `gorm:"column:user_one_uuid;uniqueIndex:idx_friend_pair;type:char(36);not null;comment:好友对较小uuid"`
	UserTwoUuid string `gorm:"column:user_two_uuid;uniqueIndex:idx_friend_pair;index;type:char(36);not null;comment:好友对较大uuid"`

	CreatedAt time.Time
}

// TableName 指定表名
func (Friend) TableName() string {
	return "friend"
}

// FriendRequest 好友申请
// 与 ChatRequest 同构：组合唯一、接受/拒绝后删除
type FriendRequest struct {
	ID uint `gorm:"primarykey"`

	RequesterUuid string `gorm:"column:requester_uuid;uniqueIndex:idx_friend_request;type:char(36);not null;comment:申请人uuid"`
	TargetUuid    string `gorm:"column:target_uuid;uniqueIndex:idx_friend_request;index;type:char(36);not null;comment:接收人uuid"`

	CreatedAt time.Time
}

// TableName 指定表名
func (FriendRequest) TableName() string {
	return "friend_request"
}
