// Package story 提供动态与评论数据访问层的具体实现
package story

import (
	"nuri_social_server/internal/dao/mysql/internal"
	"nuri_social_server/internal/model"

	"gorm.io/gorm"
)

// storyRepository StoryRepository 接口的实现
type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository 创建 StoryRepository 实例
func NewStoryRepository(db *gorm.DB) *storyRepository {
	return &storyRepository{db: db}
}

// ==================== 动态 ====================

// CreateStory 创建动态
func (r *storyRepository) CreateStory(story *model.Story) error {
	if err := r.db.Create(story).Error; err != nil {
		return internal.WrapDBError(err, "创建动态")
	}
	return nil
}

// FindStoryByUuid 根据 UUID 查找动态
func (r *storyRepository) FindStoryByUuid(uuid string) (*model.Story, error) {
	var story model.Story
	if err := r.db.Where("uuid = ?", uuid).First(&story).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询动态 uuid=%s", uuid)
	}
	return &story, nil
}

// FindPageByAuthor 按创建时间倒序分页查询作者的动态
func (r *storyRepository) FindPageByAuthor(authorUuid string, limit, offset int) ([]model.Story, error) {
	var stories []model.Story
	if err := r.db.Where("author_uuid = ?", authorUuid).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&stories).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "分页查询作者动态 author=%s", authorUuid)
	}
	return stories, nil
}

// DeleteStoryCascade 删除动态及其评论
func (r *storyRepository) DeleteStoryCascade(uuid string) error {
	if err := r.db.Where("story_uuid = ?", uuid).Delete(&model.Comment{}).Error; err != nil {
		return internal.WrapDBErrorf(err, "删除动态评论 story=%s", uuid)
	}
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Story{}).Error; err != nil {
		return internal.WrapDBErrorf(err, "删除动态 uuid=%s", uuid)
	}
	return nil
}

// ==================== 评论 ====================

// CreateComment 创建评论
func (r *storyRepository) CreateComment(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return internal.WrapDBError(err, "创建评论")
	}
	return nil
}

// FindCommentByUuid 根据 UUID 查找评论
func (r *storyRepository) FindCommentByUuid(uuid string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("uuid = ?", uuid).First(&comment).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询评论 uuid=%s", uuid)
	}
	return &comment, nil
}

// FindCommentsByStory 获取动态的全部评论，按创建时间正序
func (r *storyRepository) FindCommentsByStory(storyUuid string) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.Where("story_uuid = ?", storyUuid).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询动态评论 story=%s", storyUuid)
	}
	return comments, nil
}

// DeleteComment 删除评论
func (r *storyRepository) DeleteComment(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Comment{}).Error; err != nil {
		return internal.WrapDBErrorf(err, "删除评论 uuid=%s", uuid)
	}
	return nil
}
