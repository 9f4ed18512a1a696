// 本文件处理动态、评论与表情目录相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/infrastructure/middleware"
	"nuri_social_server/internal/service"
)

// StoryHandler 动态请求处理器
type StoryHandler struct {
	storySvc   service.StoryService
	commentSvc service.CommentService
}

// NewStoryHandler 创建动态处理器实例
func NewStoryHandler(storySvc service.StoryService, commentSvc service.CommentService) *StoryHandler {
	return &StoryHandler{storySvc: storySvc, commentSvc: commentSvc}
}

// CreateStory 发布动态
// POST /story
func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req request.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.storySvc.CreateStory(middleware.CurrentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListStories 分页查询作者动态
// GET /story/list?authorUuid=xx&limit=20&offset=0
func (h *StoryHandler) ListStories(c *gin.Context) {
	var req request.ListStoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.storySvc.ListStories(req.AuthorUuid, req.Limit, req.Offset)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetStory 查询单条动态
// GET /story/:uuid
func (h *StoryHandler) GetStory(c *gin.Context) {
	data, err := h.storySvc.GetStory(c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteStory 删除动态
// DELETE /story/:uuid
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	if err := h.storySvc.DeleteStory(middleware.CurrentUserId(c), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// CreateComment 发表评论
// POST /comment
func (h *StoryHandler) CreateComment(c *gin.Context) {
	var req request.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.commentSvc.CreateComment(middleware.CurrentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListComments 获取动态的全部评论
// GET /comment/story/:uuid
func (h *StoryHandler) ListComments(c *gin.Context) {
	data, err := h.commentSvc.ListComments(c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteComment 删除评论
// DELETE /comment/:uuid
func (h *StoryHandler) DeleteComment(c *gin.Context) {
	if err := h.commentSvc.DeleteComment(middleware.CurrentUserId(c), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// EmojiHandler 表情目录处理器
type EmojiHandler struct {
	emojiSvc service.EmojiService
}

// NewEmojiHandler 创建表情目录处理器实例
func NewEmojiHandler(emojiSvc service.EmojiService) *EmojiHandler {
	return &EmojiHandler{emojiSvc: emojiSvc}
}

// ListEmojis 获取表情目录
// GET /emoji/list
func (h *EmojiHandler) ListEmojis(c *gin.Context) {
	data, err := h.emojiSvc.ListEmojis()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
