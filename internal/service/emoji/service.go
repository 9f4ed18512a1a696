// Package emoji 实现表情目录业务逻辑
// 表情是对象存储中 emoji/ 前缀下的文件，目录来自文件记录表
package emoji

import (
	"strings"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/pkg/errorx"
)

// emojiKeyPrefix 表情文件在对象存储中的键前缀
const emojiKeyPrefix = "emoji/"

// emojiService 表情目录业务逻辑实现
type emojiService struct {
	repos *mysql.Repositories
}

// NewEmojiService 构造函数，注入 Repository 聚合
func NewEmojiService(repos *mysql.Repositories) *emojiService {
	return &emojiService{repos: repos}
}

// ListEmojis 获取表情目录
func (s *emojiService) ListEmojis() ([]respond.EmojiRespond, error) {
	files, err := s.repos.File.FindByKeyPrefix(emojiKeyPrefix)
	if err != nil {
		return nil, err
	}
	list := make([]respond.EmojiRespond, 0, len(files))
	for _, f := range files {
		list = append(list, respond.EmojiRespond{Id: f.Uuid, Key: f.Key})
	}
	return list, nil
}

// Resolve 将表情标识解析为目录项
// ref 为文件 uuid；不指向表情目录下文件时视为未知表情
func (s *emojiService) Resolve(ref string) (*respond.EmojiRespond, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "表情标识不能为空")
	}
	file, err := s.repos.File.FindByUuid(ref)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "表情 %s 不存在", ref)
		}
		return nil, err
	}
	if !strings.HasPrefix(file.Key, emojiKeyPrefix) {
		return nil, errorx.Newf(errorx.CodeNotFound, "文件 %s 不是表情", ref)
	}
	return &respond.EmojiRespond{Id: file.Uuid, Key: file.Key}, nil
}
