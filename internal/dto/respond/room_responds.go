package respond

// RoomRespond 房间详情响应
// 使用位置:
//   - internal/service/room/service.go: CreateRoom, ListRooms
type RoomRespond struct {
	Uuid        string   `json:"uuid"`
	MemberUuids []string `json:"memberUuids"`
	CreatedAt   string   `json:"createdAt"`
}

// ChatRequestRespond 聊天请求响应
// 使用位置:
//   - internal/service/room/service.go: SendChatRequest, ListPendingChatRequests
type ChatRequestRespond struct {
	RequesterUuid string `json:"requesterUuid"`
	TargetUuid    string `json:"targetUuid"`
	CreatedAt     string `json:"createdAt"`
}

// ChatRequestResultRespond 聊天请求处理结果
// 对向请求折叠时 accepted 为 true 且携带建好的房间
// 使用位置:
//   - internal/service/room/service.go: SendChatRequest, AcceptChatRequest
type ChatRequestResultRespond struct {
	Accepted bool         `json:"accepted"`
	Request  *ChatRequestRespond `json:"request,omitempty"`
	Room     *RoomRespond `json:"room,omitempty"`
}
