// Package friend 实现好友业务逻辑
// 好友关系按字典序归一化存储，一对好友只有一行
// 好友申请与聊天请求同构：对向待处理申请折叠为直接建立关系
package friend

import (
	"go.uber.org/zap"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/enum/notification/notification_type_enum"
	"nuri_social_server/pkg/errorx"
)

// Notifier 通知创建入口，由 notification Service 实现
type Notifier interface {
	Notify(userUuid, notifType string, data interface{})
}

// friendService 好友业务逻辑实现
type friendService struct {
	repos    *mysql.Repositories
	notifier Notifier
}

// NewFriendService 构造函数，注入 Repository 聚合与通知入口
func NewFriendService(repos *mysql.Repositories, notifier Notifier) *friendService {
	return &friendService{repos: repos, notifier: notifier}
}

// normalizePair 好友对按字典序归一化
func normalizePair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// SendFriendRequest 发起好友申请
// 已是好友或重复申请返回 Conflict；对向待处理申请折叠为直接建立关系
func (s *friendService) SendFriendRequest(requesterUuid, targetUuid string) (*respond.FriendRequestResultRespond, error) {
	if requesterUuid == targetUuid {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能添加自己为好友")
	}
	if _, err := s.repos.User.FindByUuid(targetUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", targetUuid)
		}
		return nil, err
	}

	one, two := normalizePair(requesterUuid, targetUuid)
	if _, err := s.repos.Social.FindFriend(one, two); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "双方已是好友")
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	// 对向折叠：对方的申请还在待处理，直接建立好友关系
	if _, err := s.repos.Social.FindFriendRequest(targetUuid, requesterUuid); err == nil {
		if err := s.acceptInTx(requesterUuid, targetUuid); err != nil {
			return nil, err
		}
		return &respond.FriendRequestResultRespond{Accepted: true}, nil
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	friendRequest := model.FriendRequest{RequesterUuid: requesterUuid, TargetUuid: targetUuid}
	if err := s.repos.Social.CreateFriendRequest(&friendRequest); err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeConflict, "好友申请已存在")
		}
		return nil, err
	}

	s.notifier.Notify(targetUuid, notification_type_enum.FriendRequest,
		map[string]string{"requesterUuid": requesterUuid})

	return &respond.FriendRequestResultRespond{
		Accepted: false,
		Request: &respond.FriendRequestRespond{
			RequesterUuid: friendRequest.RequesterUuid,
			TargetUuid:    friendRequest.TargetUuid,
			CreatedAt:     friendRequest.CreatedAt.Format("2006-01-02 15:04:05"),
		},
	}, nil
}

// AcceptFriendRequest 接受好友申请
func (s *friendService) AcceptFriendRequest(targetUuid, requesterUuid string) error {
	if _, err := s.repos.Social.FindFriendRequest(requesterUuid, targetUuid); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "好友申请不存在")
		}
		return err
	}
	return s.acceptInTx(targetUuid, requesterUuid)
}

// acceptInTx 在事务内删除双向申请并建立好友关系
func (s *friendService) acceptInTx(a, b string) error {
	one, two := normalizePair(a, b)
	err := s.repos.Transaction(func(tx *mysql.Repositories) error {
		if _, err := tx.Social.DeleteFriendRequest(a, b); err != nil {
			return err
		}
		if _, err := tx.Social.DeleteFriendRequest(b, a); err != nil {
			return err
		}
		return tx.Social.CreateFriend(&model.Friend{UserOneUuid: one, UserTwoUuid: two})
	})
	if err != nil {
		return err
	}
	zap.L().Info("建立好友关系", zap.String("one", one), zap.String("two", two))
	return nil
}

// RejectFriendRequest 拒绝好友申请
func (s *friendService) RejectFriendRequest(targetUuid, requesterUuid string) error {
	rows, err := s.repos.Social.DeleteFriendRequest(requesterUuid, targetUuid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errorx.New(errorx.CodeNotFound, "好友申请不存在")
	}
	return nil
}

// ListPendingFriendRequests 获取发给当前用户的待处理好友申请
func (s *friendService) ListPendingFriendRequests(targetUuid string) ([]respond.FriendRequestRespond, error) {
	requests, err := s.repos.Social.FindFriendRequestsByTarget(targetUuid)
	if err != nil {
		return nil, err
	}
	list := make([]respond.FriendRequestRespond, 0, len(requests))
	for _, req := range requests {
		list = append(list, respond.FriendRequestRespond{
			RequesterUuid: req.RequesterUuid,
			TargetUuid:    req.TargetUuid,
			CreatedAt:     req.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}

// ListFriends 获取好友资料列表
func (s *friendService) ListFriends(userUuid string) ([]respond.UserInfoRespond, error) {
	friends, err := s.repos.Social.FindFriendsOf(userUuid)
	if err != nil {
		return nil, err
	}
	friendUuids := make([]string, 0, len(friends))
	for _, f := range friends {
		if f.UserOneUuid == userUuid {
			friendUuids = append(friendUuids, f.UserTwoUuid)
		} else {
			friendUuids = append(friendUuids, f.UserOneUuid)
		}
	}
	users, err := s.repos.User.FindByUuids(friendUuids)
	if err != nil {
		return nil, err
	}
	list := make([]respond.UserInfoRespond, 0, len(users))
	for i := range users {
		list = append(list, respond.UserInfoRespond{
			Uuid:      users[i].Uuid,
			Nickname:  users[i].Nickname,
			Email:     users[i].Email,
			Avatar:    users[i].Avatar,
			CreatedAt: users[i].CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}

// DeleteFriend 解除好友关系
func (s *friendService) DeleteFriend(userUuid, friendUuid string) error {
	one, two := normalizePair(userUuid, friendUuid)
	rows, err := s.repos.Social.DeleteFriend(one, two)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errorx.New(errorx.CodeNotFound, "好友关系不存在")
	}
	return nil
}
