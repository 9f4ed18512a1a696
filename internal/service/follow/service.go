// Package follow 实现关注业务逻辑
// 关注是单向关系，重复关注由唯一索引拦截
package follow

import (
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

// followService 关注业务逻辑实现
type followService struct {
	repos    *mysql.Repositories
	notifier Notifier
}

// NewFollowService 构造函数，注入 Repository 聚合与通知入口
func NewFollowService(repos *mysql.Repositories, notifier Notifier) *followService {
	return &followService{repos: repos, notifier: notifier}
}

// Follow 关注用户
func (s *followService) Follow(followerUuid, targetUuid string) (*respond.FollowRespond, error) {
	if followerUuid == targetUuid {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能关注自己")
	}
	if _, err := s.repos.User.FindByUuid(targetUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", targetUuid)
		}
		return nil, err
	}

	follower := model.Follower{FollowerUuid: followerUuid, FollowingUuid: targetUuid}
	if err := s.repos.Social.CreateFollower(&follower); err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeConflict, "已关注该用户")
		}
		return nil, err
	}

	s.notifier.Notify(targetUuid, notification_type_enum.FollowRequest,
		map[string]string{"followerUuid": followerUuid})

	return &respond.FollowRespond{
		FollowerUuid:  follower.FollowerUuid,
		FollowingUuid: follower.FollowingUuid,
		CreatedAt:     follower.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// Unfollow 取消关注
func (s *followService) Unfollow(followerUuid, targetUuid string) error {
	rows, err := s.repos.Social.DeleteFollower(followerUuid, targetUuid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errorx.New(errorx.CodeNotFound, "关注关系不存在")
	}
	return nil
}

// ListFollowers 获取粉丝资料列表
func (s *followService) ListFollowers(userUuid string) ([]respond.UserInfoRespond, error) {
	followers, err := s.repos.Social.FindFollowersOf(userUuid)
	if err != nil {
		return nil, err
	}
	uuids := make([]string, 0, len(followers))
	for _, f := range followers {
		uuids = append(uuids, f.FollowerUuid)
	}
	return s.toUserList(uuids)
}

// ListFollowing 获取关注的用户资料列表
func (s *followService) ListFollowing(userUuid string) ([]respond.UserInfoRespond, error) {
	following, err := s.repos.Social.FindFollowingOf(userUuid)
	if err != nil {
		return nil, err
	}
	uuids := make([]string, 0, len(following))
	for _, f := range following {
		uuids = append(uuids, f.FollowingUuid)
	}
	return s.toUserList(uuids)
}

// toUserList 批量取用户资料并转响应体
func (s *followService) toUserList(uuids []string) ([]respond.UserInfoRespond, error) {
	users, err := s.repos.User.FindByUuids(uuids)
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
