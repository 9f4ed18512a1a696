// Package model 定义数据库实体模型
// 本文件定义用户信息模型
package model

import "gorm.io/gorm"

// UserInfo 用户模型
// 对应数据库 user_info 表
type UserInfo struct {
	gorm.Model

	// Uuid 用户唯一标识
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:用户uuid"`

	// Nickname 昵称，对外展示用
	Nickname string `gorm:"column:nickname;type:varchar(30);not null;comment:昵称"`

	// Email 登录邮箱
	Email string `gorm:"column:email;uniqueIndex;type:varchar(100);not null;comment:邮箱"`

	// Telephone 手机号，用于短信验证码登录
	Telephone string `gorm:"column:telephone;index;type:char(20);comment:手机号"`

	// Avatar 头像，存储文件记录的 uuid
	Avatar string `gorm:"column:avatar;type:char(36);comment:头像文件uuid"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}
