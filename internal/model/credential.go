// Package model 定义数据库实体模型
// 本文件定义凭证模型，保存密码哈希和设备推送令牌
package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Credential 凭证模型
// 与 UserInfo 一一对应，敏感字段与用户资料分表存放
type Credential struct {
	gorm.Model

	// UserUuid 所属用户
	UserUuid string `gorm:"column:user_uuid;uniqueIndex;type:char(36);not null;comment:用户uuid"`

	// Password bcrypt 哈希后的密码
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码哈希"`

	// DeviceToken 设备推送令牌，为空表示该用户没有可推送的设备
	DeviceToken string `gorm:"column:device_token;type:varchar(255);comment:设备推送令牌"`
}

// TableName 指定表名
func (Credential) TableName() string {
	return "credential"
}

// SetPassword 对明文密码做 bcrypt 哈希后存入
func (c *Credential) SetPassword(raw string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.Password = string(hashed)
	return nil
}

// CheckPassword 校验明文密码与存储哈希是否匹配
func (c *Credential) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(raw)) == nil
}
