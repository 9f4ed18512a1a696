// 本文件处理好友与关注相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/infrastructure/middleware"
	"nuri_social_server/internal/service"
)

// FriendHandler 好友请求处理器
type FriendHandler struct {
	friendSvc service.FriendService
}

// NewFriendHandler 创建好友处理器实例
func NewFriendHandler(friendSvc service.FriendService) *FriendHandler {
	return &FriendHandler{friendSvc: friendSvc}
}

// SendFriendRequest 发起好友申请
// POST /friendRequest
func (h *FriendHandler) SendFriendRequest(c *gin.Context) {
	var req request.SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.friendSvc.SendFriendRequest(middleware.CurrentUserId(c), req.TargetUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AcceptFriendRequest 接受好友申请
// POST /friendRequest/accept
func (h *FriendHandler) AcceptFriendRequest(c *gin.Context) {
	var req request.RespondFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.AcceptFriendRequest(middleware.CurrentUserId(c), req.RequesterUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RejectFriendRequest 拒绝好友申请
// POST /friendRequest/reject
func (h *FriendHandler) RejectFriendRequest(c *gin.Context) {
	var req request.RespondFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.RejectFriendRequest(middleware.CurrentUserId(c), req.RequesterUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListPendingFriendRequests 获取发给当前用户的待处理好友申请
// GET /friendRequest/pending
func (h *FriendHandler) ListPendingFriendRequests(c *gin.Context) {
	data, err := h.friendSvc.ListPendingFriendRequests(middleware.CurrentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListFriends 获取好友列表
// GET /friend/list
func (h *FriendHandler) ListFriends(c *gin.Context) {
	data, err := h.friendSvc.ListFriends(middleware.CurrentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteFriend 解除好友关系
// DELETE /friend/:uuid
func (h *FriendHandler) DeleteFriend(c *gin.Context) {
	if err := h.friendSvc.DeleteFriend(middleware.CurrentUserId(c), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// FollowHandler 关注请求处理器
type FollowHandler struct {
	followSvc service.FollowService
}

// NewFollowHandler 创建关注处理器实例
func NewFollowHandler(followSvc service.FollowService) *FollowHandler {
	return &FollowHandler{followSvc: followSvc}
}

// Follow 关注用户
// POST /follow
func (h *FollowHandler) Follow(c *gin.Context) {
	var req request.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.followSvc.Follow(middleware.CurrentUserId(c), req.TargetUuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Unfollow 取消关注
// DELETE /follow/:uuid
func (h *FollowHandler) Unfollow(c *gin.Context) {
	if err := h.followSvc.Unfollow(middleware.CurrentUserId(c), c.Param("uuid")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListFollowers 获取粉丝列表
// GET /follow/followers
func (h *FollowHandler) ListFollowers(c *gin.Context) {
	data, err := h.followSvc.ListFollowers(middleware.CurrentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListFollowing 获取关注列表
// GET /follow/following
func (h *FollowHandler) ListFollowing(c *gin.Context) {
	data, err := h.followSvc.ListFollowing(middleware.CurrentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
