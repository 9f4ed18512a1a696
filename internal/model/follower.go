// Package model 定义数据库实体模型
// 本文件定义关注关系模型
package model

import "time"

// Follower 关注关系
// follower 关注 following，单向；重复关注由唯一索引拦截
type Follower struct {
	ID uint `gorm:"primarykey"`

	FollowerUuid  string `gorm:"column:follower_uuid;uniqueIndex:idx_follow_pair;type:char(36);not null;comment:关注者uuid"`
	FollowingUuid string `gorm:"column:following_uuid;uniqueIndex:idx_follow_pair;index;type:char(36);not null;comment:被关注者uuid"`

	CreatedAt time.Time
}

// TableName 指定表名
func (Follower) TableName() string {
	return "follower"
}
