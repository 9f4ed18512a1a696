package request

// CreateStoryRequest 发布动态请求
// 使用位置:
//   - internal/handler/story_handler.go: CreateStory
//   - internal/service/story/service.go: CreateStory
type CreateStoryRequest struct {
	Content   string   `json:"content"`
	FileUuids []string `json:"fileUuids"`
}

// ListStoriesRequest 分页查询作者动态请求（query 参数）
// 使用位置:
//   - internal/handler/story_handler.go: ListStories
type ListStoriesRequest struct {
	AuthorUuid string `form:"authorUuid" binding:"required"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// CreateCommentRequest 发表评论请求
// 使用位置:
//   - internal/handler/comment_handler.go: CreateComment
//   - internal/service/comment/service.go: CreateComment
type CreateCommentRequest struct {
	StoryUuid string `json:"storyUuid" binding:"required"`
	Content   string `json:"content" binding:"required,max=500"`
}
