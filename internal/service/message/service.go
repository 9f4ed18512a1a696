// Package message 实现消息业务逻辑
// 消息管线：校验 -> 持久化 -> 向房间内其他成员逐一扇出事件与通知
package message

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nuri_social_server/internal/dao/mysql"
	myredis "nuri_social_server/internal/dao/redis"
	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/internal/eventbus"
	"nuri_social_server/internal/gateway/subscription"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/constants"
	"nuri_social_server/pkg/enum/message/message_type_enum"
	"nuri_social_server/pkg/enum/notification/notification_type_enum"
	"nuri_social_server/pkg/errorx"
	"nuri_social_server/pkg/util/snowflake"
)

// Notifier 通知创建入口，由 notification Service 实现
type Notifier interface {
	Notify(userUuid, notifType string, data interface{})
}

// EmojiResolver 表情解析入口，由 emoji Service 实现
type EmojiResolver interface {
	Resolve(ref string) (*respond.EmojiRespond, error)
}

// emojiEnvelope 表情消息的规范化存储形式
type emojiEnvelope struct {
	Id  string `json:"id"`
	Key string `json:"key"`
}

// messageService 消息业务逻辑实现
type messageService struct {
	repos    *mysql.Repositories
	bus      eventbus.Bus
	notifier Notifier
	emojis   EmojiResolver
	members  *myredis.RoomMemberCache
}

// NewMessageService 构造函数，注入 Repository 聚合、事件总线、通知入口、表情解析与成员缓存
func NewMessageService(repos *mysql.Repositories, bus eventbus.Bus, notifier Notifier,
	emojis EmojiResolver, members *myredis.RoomMemberCache) *messageService {
	return &messageService{repos: repos, bus: bus, notifier: notifier, emojis: emojis, members: members}
}

// SendMessage 发送消息
// 文本消息限长 500 字符；表情消息存储规范化的 {"id":...,"key":...} 信封
func (s *messageService) SendMessage(senderUuid string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	if req.RoomUuid == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "缺少房间标识")
	}
	ok, err := s.repos.Room.IsMember(req.RoomUuid, senderUuid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeInvalidParam, "发送者不在房间中")
	}

	var content string
	switch req.Type {
	case message_type_enum.Text:
		content = req.Content
		if strings.TrimSpace(content) == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "文本消息不能为空")
		}
		if len([]rune(content)) > constants.MESSAGE_MAX_LENGTH {
			return nil, errorx.Newf(errorx.CodeInvalidParam, "文本消息不能超过 %d 字符", constants.MESSAGE_MAX_LENGTH)
		}
	case message_type_enum.Emoji:
		emoji, err := s.emojis.Resolve(req.Content)
		if err != nil {
			return nil, err
		}
		envelope, err := json.Marshal(emojiEnvelope{Id: emoji.Id, Key: emoji.Key})
		if err != nil {
			zap.L().Error("序列化表情信封失败", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		content = string(envelope)
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "不支持的消息类型 %s", req.Type)
	}

	message := model.Message{
		Uuid:       snowflake.GenerateID(),
		RoomUuid:   req.RoomUuid,
		SenderUuid: senderUuid,
		Type:       req.Type,
		Content:    content,
	}
	if err := s.repos.Message.Create(&message); err != nil {
		return nil, err
	}

	rsp := s.toRespond(&message)
	s.fanOut(rsp)
	return rsp, nil
}

// fanOut 向房间内除发送者外的每个成员投递事件并落一条 message 通知
// 扇出失败只记日志，不影响已持久化的消息
func (s *messageService) fanOut(rsp *respond.MessageRespond) {
	memberUuids, err := s.memberUuids(rsp.RoomUuid)
	if err != nil {
		zap.L().Error("查询房间成员失败，消息未扇出", zap.Error(err), zap.String("room", rsp.RoomUuid))
		return
	}
	payload, err := json.Marshal(rsp)
	if err != nil {
		zap.L().Error("序列化消息事件失败", zap.Error(err))
		return
	}
	for _, memberUuid := range memberUuids {
		if memberUuid == rsp.SenderUuid {
			continue
		}
		if err := s.bus.Publish(context.Background(), subscription.MessageTopic(memberUuid), payload); err != nil {
			zap.L().Error("发布消息事件失败", zap.Error(err), zap.String("member", memberUuid))
		}
		s.notifier.Notify(memberUuid, notification_type_enum.Message, map[string]string{
			"roomUuid":    rsp.RoomUuid,
			"messageUuid": rsp.Uuid,
			"senderUuid":  rsp.SenderUuid,
		})
	}
}

// memberUuids 读取房间成员列表，优先走缓存
// 缓存未命中时回源数据库并异步回填成员集合
func (s *messageService) memberUuids(roomUuid string) ([]string, error) {
	cached, err := s.members.Members(context.Background(), roomUuid)
	if err != nil {
		zap.L().Warn("读取房间成员缓存失败，回源数据库", zap.Error(err), zap.String("room", roomUuid))
	} else if len(cached) > 0 {
		return cached, nil
	}

	memberUuids, err := s.repos.Room.FindMemberUserUuids(roomUuid)
	if err != nil {
		return nil, err
	}
	s.members.Fill(roomUuid, memberUuids)
	return memberUuids, nil
}

// ListMessages 按创建时间倒序分页查询房间消息
// 多取一行探测是否还有下一页，nextOffset 在没有下一页时为 null
func (s *messageService) ListMessages(callerUuid, roomUuid string, limit, offset int) (*respond.MessagePageRespond, error) {
	ok, err := s.repos.Room.IsMember(roomUuid, callerUuid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errorx.New(errorx.CodeForbidden, "用户不是房间成员")
	}

	if limit <= 0 {
		limit = constants.MESSAGE_PAGE_SIZE
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.repos.Message.FindPageByRoom(roomUuid, limit+1, offset)
	if err != nil {
		return nil, err
	}

	page := &respond.MessagePageRespond{HasNextPage: false, NextOffset: nil}
	if len(messages) > limit {
		messages = messages[:limit]
		next := offset + limit
		page.HasNextPage = true
		page.NextOffset = &next
	}
	page.Messages = make([]respond.MessageRespond, 0, len(messages))
	for i := range messages {
		page.Messages = append(page.Messages, *s.toRespond(&messages[i]))
	}
	return page, nil
}

// toRespond 把消息模型转换为响应体，雪花 ID 转十进制字符串
func (s *messageService) toRespond(m *model.Message) *respond.MessageRespond {
	return &respond.MessageRespond{
		Uuid:       strconv.FormatInt(m.Uuid, 10),
		RoomUuid:   m.RoomUuid,
		SenderUuid: m.SenderUuid,
		Type:       m.Type,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
