package respond

// FriendRequestRespond 好友申请响应
// 使用位置:
//   - internal/service/friend/service.go: SendFriendRequest, ListPendingFriendRequests
type FriendRequestRespond struct {
	RequesterUuid string `json:"requesterUuid"`
	TargetUuid    string `json:"targetUuid"`
	CreatedAt     string `json:"createdAt"`
}

// FriendRequestResultRespond 好友申请处理结果
// 对向申请折叠时 accepted 为 true
// 使用位置:
//   - internal/service/friend/service.go: SendFriendRequest
type FriendRequestResultRespond struct {
	Accepted bool                  `json:"accepted"`
	Request  *FriendRequestRespond `json:"request,omitempty"`
}

// FollowRespond 关注关系响应
// 使用位置:
//   - internal/service/follow/service.go: Follow, ListFollowers, ListFollowing
type FollowRespond struct {
	FollowerUuid  string `json:"followerUuid"`
	FollowingUuid string `json:"followingUuid"`
	CreatedAt     string `json:"createdAt"`
}
