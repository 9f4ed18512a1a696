package request

// CreateRoomRequest 创建房间请求
// memberUuids 需包含创建者在内至少两名成员
// 使用位置:
//   - internal/handler/room_handler.go: CreateRoom
//   - internal/service/room/service.go: CreateRoom
type CreateRoomRequest struct {
	MemberUuids []string `json:"memberUuids" binding:"required,min=2"`
}

// DirectRoomRequest 查找或建立双人房间请求
// 使用位置:
//   - internal/handler/room_handler.go: FindOrCreateDirectRoom
//   - internal/service/room/service.go: FindOrCreateDirectRoom
type DirectRoomRequest struct {
	UserUuid string `json:"userUuid" binding:"required"`
}

// SendChatRequestRequest 发起聊天请求
// 使用位置:
//   - internal/handler/room_handler.go: SendChatRequest
//   - internal/service/room/service.go: SendChatRequest
type SendChatRequestRequest struct {
	TargetUuid string `json:"targetUuid" binding:"required"`
}

// RespondChatRequestRequest 接受或拒绝聊天请求
// 使用位置:
//   - internal/handler/room_handler.go: AcceptChatRequest, RejectChatRequest
type RespondChatRequestRequest struct {
	RequesterUuid string `json:"requesterUuid" binding:"required"`
}
