package request

// SendMessageRequest 发送消息请求
// type 为 text 时 content 是消息正文；为 emoji 时 content 是表情的文件 UUID 或 key
// 使用位置:
//   - internal/handler/message_handler.go: SendMessage
//   - internal/service/message/service.go: SendMessage
type SendMessageRequest struct {
	RoomUuid string `json:"roomUuid" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Content  string `json:"content"`
}

// ListMessagesRequest 分页查询房间消息请求（query 参数）
// 使用位置:
//   - internal/handler/message_handler.go: ListMessages
type ListMessagesRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
