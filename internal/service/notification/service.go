// Package notification 实现通知业务逻辑
// 通知同时走三条路径：持久化（拉取历史）、事件总线（在线实时推送）、
// 设备推送网关（离线触达，尽力而为）
package notification

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/internal/eventbus"
	"nuri_social_server/internal/gateway/subscription"
	"nuri_social_server/internal/infrastructure/push"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/enum/notification/notification_type_enum"
	"nuri_social_server/pkg/errorx"
)

// notificationService 通知业务逻辑实现
type notificationService struct {
	repos       *mysql.Repositories
	bus         eventbus.Bus
	pushGateway push.PushGateway
}

// NewNotificationService 构造函数，注入 Repository 聚合、事件总线与推送网关
func NewNotificationService(repos *mysql.Repositories, bus eventbus.Bus, pushGateway push.PushGateway) *notificationService {
	return &notificationService{repos: repos, bus: bus, pushGateway: pushGateway}
}

// pushBody 各通知类型的推送正文
var pushBody = map[string]string{
	notification_type_enum.NewPost:       "你关注的人发布了新动态",
	notification_type_enum.ChatRequest:   "收到新的聊天请求",
	notification_type_enum.Message:       "收到新消息",
	notification_type_enum.FriendRequest: "收到新的好友申请",
	notification_type_enum.FollowRequest: "有人关注了你",
}

// Create 创建通知并发布到通知流，设备在线时尽力推送
func (s *notificationService) Create(userUuid, notifType string, data json.RawMessage) (*respond.NotificationRespond, error) {
	if !notification_type_enum.IsValid(notifType) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "未知的通知类型 %s", notifType)
	}
	if _, err := s.repos.User.FindByUuid(userUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "通知接收人 %s 不存在", userUuid)
		}
		return nil, err
	}
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	notification := model.Notification{
		Uuid:     uuid.NewString(),
		UserUuid: userUuid,
		Type:     notifType,
		Data:     string(data),
		Read:     false,
	}
	if err := s.repos.Notification.Create(&notification); err != nil {
		return nil, err
	}

	rsp := toRespond(&notification)

	// 发布到共享通知流，订阅网关按接收者过滤
	if payload, err := json.Marshal(rsp); err != nil {
		zap.L().Error("序列化通知事件失败", zap.Error(err))
	} else if err := s.bus.Publish(context.Background(), subscription.NotificationsTopic, payload); err != nil {
		zap.L().Error("发布通知事件失败", zap.Error(err))
	}

	// 尽力而为的设备推送，失败只记日志
	s.tryPush(userUuid, notifType)

	return rsp, nil
}

// Notify 创建通知的便捷入口，失败只记日志（供其他 Service 调用）
func (s *notificationService) Notify(userUuid, notifType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("序列化通知负载失败", zap.Error(err), zap.String("type", notifType))
		return
	}
	if _, err := s.Create(userUuid, notifType, payload); err != nil {
		zap.L().Error("创建通知失败", zap.Error(err),
			zap.String("user", userUuid), zap.String("type", notifType))
	}
}

// tryPush 有设备令牌时向推送网关发一条通知
func (s *notificationService) tryPush(userUuid, notifType string) {
	credential, err := s.repos.Credential.FindByUserUuid(userUuid)
	if err != nil || credential.DeviceToken == "" {
		return
	}
	body := pushBody[notifType]
	if err := s.pushGateway.SendPushNotification(context.Background(), credential.DeviceToken,
		"Nuri", body, map[string]string{"type": notifType}); err != nil {
		zap.L().Warn("设备推送失败", zap.Error(err), zap.String("user", userUuid))
	}
}

// List 获取用户的全部通知，最新在前
func (s *notificationService) List(userUuid string) ([]respond.NotificationRespond, error) {
	notifications, err := s.repos.Notification.FindByUser(userUuid)
	if err != nil {
		return nil, err
	}
	list := make([]respond.NotificationRespond, 0, len(notifications))
	for i := range notifications {
		list = append(list, *toRespond(&notifications[i]))
	}
	return list, nil
}

// MarkAsRead 将通知置为已读
// 只有接收者本人可以操作；已读通知重复操作是无害的空操作
func (s *notificationService) MarkAsRead(callerUuid, notificationUuid string) error {
	notification, err := s.repos.Notification.FindByUuid(notificationUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "通知 %s 不存在", notificationUuid)
		}
		return err
	}
	if notification.UserUuid != callerUuid {
		return errorx.New(errorx.CodeForbidden, "无权操作他人的通知")
	}
	if notification.Read {
		return nil
	}
	return s.repos.Notification.MarkRead(notificationUuid)
}

// toRespond 把通知模型转换为响应体
func toRespond(n *model.Notification) *respond.NotificationRespond {
	return &respond.NotificationRespond{
		Uuid:      n.Uuid,
		UserUuid:  n.UserUuid,
		Type:      n.Type,
		Data:      json.RawMessage(n.Data),
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
