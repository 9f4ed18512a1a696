// Package notification_type_enum 定义通知类型
package notification_type_enum

// 通知类型枚举，落库到 notification.type 字段
// 固定集合，新增类型必须同时更新 IsValid
const (
	NewPost       = "new_post"       // 关注的用户发布了新动态
	ChatRequest   = "chat_request"   // 收到 1:1 聊天请求
	Message       = "message"        // 收到聊天消息
	FriendRequest = "friend_request" // 收到好友申请
	FollowRequest = "follow_request" // 被他人关注
)

// IsValid 判断是否为受支持的通知类型
func IsValid(t string) bool {
	switch t {
	case NewPost, ChatRequest, Message, FriendRequest, FollowRequest:
		return true
	}
	return false
}
