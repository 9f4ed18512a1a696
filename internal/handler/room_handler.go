// 本文件处理房间与聊天请求相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/infrastructure/middleware"
	"nuri_social_server/internal/service"
)

// RoomHandler 房间请求处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建房间处理器实例
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// CreateRoom 创建房间
// POST /room
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req request.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.CreateRoom(middleware.CurrentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListRooms 获取当前用户所在的房间列表
// GET /room/list
func (h *RoomHandler) ListRooms(c *gin.Context) {
	data, err := h.roomSvc.ListRooms(middleware.CurrentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListMembers 获取房间成员资料
// GET /room/:uuid/members
func (h *RoomHandler) ListMembers(c *gin.Context) {
	data, err := h.roomSvc.ListMembers(middleware.CurrentUserId(c), c.Param("uuid"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LeaveRoom 退出房间
// DELETE /room/:uuid/members/me
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	if err := h.roomSvc.LeaveRoom(middleware.CurrentUserId(c), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// FindOrCreateDirectRoom 查找或建立与指定用户的双人房间
// POST /room/direct
func (h *RoomHandler) FindOrCreateDirectRoom(c *gin.Context) {
	var req request.DirectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.FindOrCreateDirectRoom(middleware.CurrentUserId(c), req.UserUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendChatRequest 发起聊天请求
// POST /chatRequest
func (h *RoomHandler) SendChatRequest(c *gin.Context) {
	var req request.SendChatRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.SendChatRequest(middleware.CurrentUserId(c), req.TargetUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AcceptChatRequest 接受聊天请求
// POST /chatRequest/accept
func (h *RoomHandler) AcceptChatRequest(c *gin.Context) {
	var req request.RespondChatRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.roomSvc.AcceptChatRequest(middleware.CurrentUserId(c), req.RequesterUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RejectChatRequest 拒绝聊天请求
// POST /chatRequest/reject
func (h *RoomHandler) RejectChatRequest(c *gin.Context) {
	var req request.RespondChatRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.roomSvc.RejectChatRequest(middleware.CurrentUserId(c), req.RequesterUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListPendingChatRequests 获取发给当前用户的待处理聊天请求
// GET /chatRequest/pending
func (h *RoomHandler) ListPendingChatRequests(c *gin.Context) {
	data, err := h.roomSvc.ListPendingChatRequests(middleware.CurrentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
