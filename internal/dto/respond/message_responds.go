package respond

// MessageRespond 单条消息响应
// uuid 为雪花 ID 的十进制字符串，避免前端 JS 精度丢失
// 使用位置:
//   - internal/service/message/service.go: SendMessage, ListMessages
//   - internal/gateway/subscription: 消息流事件负载
type MessageRespond struct {
	Uuid       string `json:"uuid"`
	RoomUuid   string `json:"roomUuid"`
	SenderUuid string `json:"senderUuid"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
}

// MessagePageRespond 消息分页响应
// nextOffset 在没有下一页时为 null
// 使用位置:
//   - internal/service/message/service.go: ListMessages
type MessagePageRespond struct {
	Messages    []MessageRespond `json:"messages"`
	HasNextPage bool             `json:"hasNextPage"`
	NextOffset  *int             `json:"nextOffset"`
}
