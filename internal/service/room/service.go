// Package room 实现房间业务逻辑
// 处理房间生命周期、成员关系与聊天请求
// 聊天请求采用对向折叠：A 申请 B 时若 B 对 A 的申请尚在待处理，
// 视为双方合意，直接建立双人房间
package room

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nuri_social_server/internal/dao/mysql"
	myredis "nuri_social_server/internal/dao/redis"
	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/enum/notification/notification_type_enum"
	"nuri_social_server/pkg/errorx"
)

// Notifier 通知创建入口，由 notification Service 实现
// 通知是尽力而为的，实现方失败只记日志
type Notifier interface {
	Notify(userUuid, notifType string, data interface{})
}

// roomService 房间业务逻辑实现
type roomService struct {
	repos    *mysql.Repositories
	notifier Notifier
	members  *myredis.RoomMemberCache
}

// NewRoomService 构造函数，注入 Repository 聚合、通知入口与成员缓存
func NewRoomService(repos *mysql.Repositories, notifier Notifier, members *myredis.RoomMemberCache) *roomService {
	return &roomService{repos: repos, notifier: notifier, members: members}
}

// CreateRoom 创建房间
// 成员列表自动并入创建者并去重，去重后不少于两人
func (s *roomService) CreateRoom(creatorUuid string, req request.CreateRoomRequest) (*respond.RoomRespond, error) {
	memberUuids := dedupMembers(append(req.MemberUuids, creatorUuid))
	if len(memberUuids) < 2 {
		return nil, errorx.New(errorx.CodeInvalidParam, "房间成员去重后不能少于两人")
	}

	// 校验所有成员存在
	users, err := s.repos.User.FindByUuids(memberUuids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(memberUuids) {
		return nil, errorx.New(errorx.CodeNotFound, "部分房间成员不存在")
	}

	room := model.Room{Uuid: uuid.NewString()}
	members := make([]model.RoomMember, 0, len(memberUuids))
	for _, userUuid := range memberUuids {
		members = append(members, model.RoomMember{RoomUuid: room.Uuid, UserUuid: userUuid})
	}

	err = s.repos.Transaction(func(tx *mysql.Repositories) error {
		if err := tx.Room.CreateRoom(&room); err != nil {
			return err
		}
		return tx.Room.AddMembers(members)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("创建房间", zap.String("room", room.Uuid), zap.Int("members", len(memberUuids)))
	s.members.Fill(room.Uuid, memberUuids)

	return s.toRespond(&room, memberUuids), nil
}

// ListRooms 获取用户所在的全部房间
func (s *roomService) ListRooms(userUuid string) ([]respond.RoomRespond, error) {
	roomUuids, err := s.repos.Room.FindRoomUuidsByUser(userUuid)
	if err != nil {
		return nil, err
	}
	rooms, err := s.repos.Room.FindRoomsByUuids(roomUuids)
	if err != nil {
		return nil, err
	}
	list := make([]respond.RoomRespond, 0, len(rooms))
	for i := range rooms {
		memberUuids, err := s.repos.Room.FindMemberUserUuids(rooms[i].Uuid)
		if err != nil {
			return nil, err
		}
		list = append(list, *s.toRespond(&rooms[i], memberUuids))
	}
	return list, nil
}

// ListMembers 获取房间成员资料，仅房间成员可查看
func (s *roomService) ListMembers(callerUuid, roomUuid string) ([]respond.UserInfoRespond, error) {
	if err := s.requireMember(roomUuid, callerUuid); err != nil {
		return nil, err
	}
	memberUuids, err := s.repos.Room.FindMemberUserUuids(roomUuid)
	if err != nil {
		return nil, err
	}
	users, err := s.repos.User.FindByUuids(memberUuids)
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

// LeaveRoom 退出房间
// 退出后剩余成员不足两人时房间失去意义，连同消息一并解散
func (s *roomService) LeaveRoom(userUuid, roomUuid string) error {
	if _, err := s.repos.Room.FindRoomByUuid(roomUuid); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "房间 %s 不存在", roomUuid)
		}
		return err
	}

	dissolved := false
	err := s.repos.Transaction(func(tx *mysql.Repositories) error {
		rows, err := tx.Room.RemoveMember(roomUuid, userUuid)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errorx.New(errorx.CodeNotFound, "用户不在该房间中")
		}
		remaining, err := tx.Room.CountMembers(roomUuid)
		if err != nil {
			return err
		}
		if remaining <= 1 {
			zap.L().Info("房间成员不足，解散房间", zap.String("room", roomUuid))
			dissolved = true
			return tx.Room.DeleteRoomCascade(roomUuid)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 事务提交后再更新缓存，失败的事务不能污染成员集合
	if dissolved {
		s.members.Dissolve(roomUuid)
	} else {
		s.members.RemoveMember(roomUuid, userUuid)
	}
	return nil
}

// FindOrCreateDirectRoom 查找两人的双人房间，没有则直接建立
// 成员集合恰好为 {userA, userB} 的房间视为双人房间
func (s *roomService) FindOrCreateDirectRoom(userUuid, otherUuid string) (*respond.RoomRespond, error) {
	if userUuid == otherUuid {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能与自己建立双人房间")
	}
	if _, err := s.repos.User.FindByUuid(otherUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", otherUuid)
		}
		return nil, err
	}

	directRoomUuid, err := s.repos.Room.FindDirectRoomUuid(userUuid, otherUuid)
	if err != nil {
		return nil, err
	}
	if directRoomUuid != "" {
		room, err := s.repos.Room.FindRoomByUuid(directRoomUuid)
		if err != nil {
			return nil, err
		}
		return s.toRespond(room, []string{userUuid, otherUuid}), nil
	}

	var room model.Room
	err = s.repos.Transaction(func(tx *mysql.Repositories) error {
		room = model.Room{Uuid: uuid.NewString()}
		if err := tx.Room.CreateRoom(&room); err != nil {
			return err
		}
		return tx.Room.AddMembers([]model.RoomMember{
			{RoomUuid: room.Uuid, UserUuid: userUuid},
			{RoomUuid: room.Uuid, UserUuid: otherUuid},
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("建立双人房间", zap.String("room", room.Uuid),
		zap.String("a", userUuid), zap.String("b", otherUuid))
	s.members.Fill(room.Uuid, []string{userUuid, otherUuid})
	return s.toRespond(&room, []string{userUuid, otherUuid}), nil
}

// SendChatRequest 发起聊天请求
// 对向待处理请求折叠为直接建房；已有双人房间或重复请求返回 Conflict
func (s *roomService) SendChatRequest(requesterUuid, targetUuid string) (*respond.ChatRequestResultRespond, error) {
	if requesterUuid == targetUuid {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能向自己发起聊天请求")
	}
	if _, err := s.repos.User.FindByUuid(targetUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", targetUuid)
		}
		return nil, err
	}

	directRoomUuid, err := s.repos.Room.FindDirectRoomUuid(requesterUuid, targetUuid)
	if err != nil {
		return nil, err
	}
	if directRoomUuid != "" {
		return nil, errorx.New(errorx.CodeConflict, "双方已有聊天房间")
	}

	// 对向折叠：对方的申请还在待处理，直接视为双方合意
	if _, err := s.repos.Room.FindChatRequest(targetUuid, requesterUuid); err == nil {
		room, err := s.acceptInTx(requesterUuid, targetUuid)
		if err != nil {
			return nil, err
		}
		return &respond.ChatRequestResultRespond{Accepted: true, Room: room}, nil
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	chatRequest := model.ChatRequest{RequesterUuid: requesterUuid, TargetUuid: targetUuid}
	if err := s.repos.Room.CreateChatRequest(&chatRequest); err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeConflict, "聊天请求已存在")
		}
		return nil, err
	}

	rsp := &respond.ChatRequestRespond{
		RequesterUuid: chatRequest.RequesterUuid,
		TargetUuid:    chatRequest.TargetUuid,
		CreatedAt:     chatRequest.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	s.notifier.Notify(targetUuid, notification_type_enum.ChatRequest,
		map[string]string{"requesterUuid": requesterUuid})

	return &respond.ChatRequestResultRespond{Accepted: false, Request: rsp}, nil
}

// AcceptChatRequest 接受聊天请求并建立双人房间
func (s *roomService) AcceptChatRequest(targetUuid, requesterUuid string) (*respond.RoomRespond, error) {
	if _, err := s.repos.Room.FindChatRequest(requesterUuid, targetUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "聊天请求不存在")
		}
		return nil, err
	}
	return s.acceptInTx(targetUuid, requesterUuid)
}

// acceptInTx 在事务内删除双向请求并建立双人房间
// accepterUuid 是做出（或被折叠视为做出）接受动作的一方
func (s *roomService) acceptInTx(accepterUuid, otherUuid string) (*respond.RoomRespond, error) {
	var room model.Room
	err := s.repos.Transaction(func(tx *mysql.Repositories) error {
		// 双向请求都清掉，折叠场景下两条可能同时存在
		if _, err := tx.Room.DeleteChatRequest(accepterUuid, otherUuid); err != nil {
			return err
		}
		if _, err := tx.Room.DeleteChatRequest(otherUuid, accepterUuid); err != nil {
			return err
		}
		room = model.Room{Uuid: uuid.NewString()}
		if err := tx.Room.CreateRoom(&room); err != nil {
			return err
		}
		return tx.Room.AddMembers([]model.RoomMember{
			{RoomUuid: room.Uuid, UserUuid: accepterUuid},
			{RoomUuid: room.Uuid, UserUuid: otherUuid},
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("聊天请求达成，建立双人房间",
		zap.String("room", room.Uuid), zap.String("a", accepterUuid), zap.String("b", otherUuid))
	s.members.Fill(room.Uuid, []string{accepterUuid, otherUuid})
	return s.toRespond(&room, []string{accepterUuid, otherUuid}), nil
}

// RejectChatRequest 拒绝聊天请求
func (s *roomService) RejectChatRequest(targetUuid, requesterUuid string) error {
	rows, err := s.repos.Room.DeleteChatRequest(requesterUuid, targetUuid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errorx.New(errorx.CodeNotFound, "聊天请求不存在")
	}
	return nil
}

// ListPendingChatRequests 获取发给当前用户的待处理聊天请求
func (s *roomService) ListPendingChatRequests(targetUuid string) ([]respond.ChatRequestRespond, error) {
	requests, err := s.repos.Room.FindChatRequestsByTarget(targetUuid)
	if err != nil {
		return nil, err
	}
	list := make([]respond.ChatRequestRespond, 0, len(requests))
	for _, req := range requests {
		list = append(list, respond.ChatRequestRespond{
			RequesterUuid: req.RequesterUuid,
			TargetUuid:    req.TargetUuid,
			CreatedAt:     req.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}

// requireMember 校验用户为房间成员
func (s *roomService) requireMember(roomUuid, userUuid string) error {
	ok, err := s.repos.Room.IsMember(roomUuid, userUuid)
	if err != nil {
		return err
	}
	if !ok {
		return errorx.New(errorx.CodeForbidden, "用户不是房间成员")
	}
	return nil
}

// toRespond 把房间模型转换为响应体
func (s *roomService) toRespond(room *model.Room, memberUuids []string) *respond.RoomRespond {
	return &respond.RoomRespond{
		Uuid:        room.Uuid,
		MemberUuids: memberUuids,
		CreatedAt:   room.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// dedupMembers 成员去重并保持稳定顺序
func dedupMembers(memberUuids []string) []string {
	seen := make(map[string]struct{}, len(memberUuids))
	out := make([]string, 0, len(memberUuids))
	for _, m := range memberUuids {
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
