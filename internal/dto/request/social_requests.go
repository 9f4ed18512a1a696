package request

// SendFriendRequestRequest 发起好友申请
// 使用位置:
//   - internal/handler/friend_handler.go: SendFriendRequest
//   - internal/service/friend/service.go: SendFriendRequest
type SendFriendRequestRequest struct {
	TargetUuid string `json:"targetUuid" binding:"required"`
}

// RespondFriendRequestRequest 接受或拒绝好友申请
// 使用位置:
//   - internal/handler/friend_handler.go: AcceptFriendRequest, RejectFriendRequest
type RespondFriendRequestRequest struct {
	RequesterUuid string `json:"requesterUuid" binding:"required"`
}

// FollowRequest 关注用户请求
// 使用位置:
//   - internal/handler/follow_handler.go: Follow
//   - internal/service/follow/service.go: Follow
type FollowRequest struct {
	TargetUuid string `json:"targetUuid" binding:"required"`
}
