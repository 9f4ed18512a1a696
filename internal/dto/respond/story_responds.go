package respond

// StoryRespond 动态响应
// 使用位置:
//   - internal/service/story/service.go: CreateStory, ListStories
type StoryRespond struct {
	Uuid       string   `json:"uuid"`
	AuthorUuid string   `json:"authorUuid"`
	Content    string   `json:"content"`
	FileUuids  []string `json:"fileUuids"`
	CreatedAt  string   `json:"createdAt"`
}

// StoryPageRespond 动态分页响应
// 使用位置:
//   - internal/service/story/service.go: ListStories
type StoryPageRespond struct {
	Stories     []StoryRespond `json:"stories"`
	HasNextPage bool           `json:"hasNextPage"`
	NextOffset  *int           `json:"nextOffset"`
}

// CommentRespond 评论响应
// 使用位置:
//   - internal/service/comment/service.go: CreateComment, ListComments
type CommentRespond struct {
	Uuid       string `json:"uuid"`
	StoryUuid  string `json:"storyUuid"`
	AuthorUuid string `json:"authorUuid"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
}
