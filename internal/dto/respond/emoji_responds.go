package respond

// EmojiRespond 表情目录项响应
// id 为文件记录 UUID，key 为对象存储键
// 使用位置:
//   - internal/service/emoji/service.go: ListEmojis, Resolve
type EmojiRespond struct {
	Id  string `json:"id"`
	Key string `json:"key"`
}
