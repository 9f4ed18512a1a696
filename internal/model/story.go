// Package model 定义数据库实体模型
// 本文件定义动态（story）和评论模型
package model

import "gorm.io/gorm"

// Story 动态模型
// 对应数据库 story 表
type Story struct {
	gorm.Model

	// Uuid 动态唯一标识
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:动态uuid"`

	// AuthorUuid 作者
	AuthorUuid string `gorm:"column:author_uuid;index;type:char(36);not null;comment:作者uuid"`

	// Content 正文
	Content string `gorm:"column:content;type:TEXT;not null;comment:正文"`

	// FileRefs 附件文件 uuid 列表，JSON 数组字符串
	FileRefs string `gorm:"column:file_refs;type:TEXT;comment:附件文件uuid列表"`
}

// TableName 指定表名
func (Story) TableName() string {
	return "story"
}

// Comment 评论模型
// 挂在动态下，随动态删除一并清理
type Comment struct {
	gorm.Model

	// Uuid 评论唯一标识
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:评论uuid"`

	// StoryUuid 所属动态
	StoryUuid string `gorm:"column:story_uuid;index;type:char(36);not null;comment:动态uuid"`

	// AuthorUuid 评论作者
	AuthorUuid string `gorm:"column:author_uuid;index;type:char(36);not null;comment:作者uuid"`

	// Content 评论内容
	Content string `gorm:"column:content;type:varchar(500);not null;comment:评论内容"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comment"
}
