// Package message_type_enum 定义消息类型
package message_type_enum

// 消息类型，与存储层 message.type 字段对应
// 目前只支持文本和表情两种消息
const (
	Text  = "text"  // 文本消息，内容为纯文本
	Emoji = "emoji" // 表情消息，内容为解析后的 {id,key} JSON
)

// IsValid 判断是否为受支持的消息类型
func IsValid(t string) bool {
	return t == Text || t == Emoji
}
