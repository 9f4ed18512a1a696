// Package subscription 实现订阅会话层
// session_manager.go
// 核心职责：单连接的订阅注册表
// 1. 以类型化的 ChannelKey 标识订阅通道，避免字符串拼接散落各处
// 2. 重复订阅幂等：返回已有订阅流，不产生重复投递
// 3. 会话终止时恰好关闭一次所有底层订阅
package subscription

import (
	"sync"

	"nuri_social_server/internal/eventbus"
	"nuri_social_server/pkg/errorx"
)

// ChannelKind 订阅通道类型
type ChannelKind string

const (
	// KindMessages 私信消息流，Param 为接收者用户 UUID
	KindMessages ChannelKind = "messages"
	// KindNotifications 通知流，共享主题，按接收者过滤
	KindNotifications ChannelKind = "notifications"
)

// ChannelKey 订阅通道标识
type ChannelKey struct {
	Kind  ChannelKind
	Param string
}

// MessageTopic 返回指定用户的消息主题，发布方与订阅方共用
func MessageTopic(userUuid string) string {
	return "message:user:" + userUuid
}

// NotificationsTopic 全局通知主题
const NotificationsTopic = "notifications"

// Topic 将通道标识映射为总线主题
func (k ChannelKey) Topic() string {
	switch k.Kind {
	case KindMessages:
		return MessageTopic(k.Param)
	case KindNotifications:
		return NotificationsTopic
	default:
		return ""
	}
}

// SessionManager 单个连接的订阅注册表
type SessionManager struct {
	userUuid string
	bus      eventbus.Bus

	mu     sync.Mutex
	subs   map[ChannelKey]*eventbus.Subscription
	closed bool
}

// NewSessionManager 为一条已认证连接创建订阅会话
func NewSessionManager(userUuid string, bus eventbus.Bus) *SessionManager {
	return &SessionManager{
		userUuid: userUuid,
		bus:      bus,
		subs:     make(map[ChannelKey]*eventbus.Subscription),
	}
}

// UserUuid 返回会话所属用户
func (m *SessionManager) UserUuid() string {
	return m.userUuid
}

// Subscribe 订阅指定通道
// 返回订阅流和 created 标记；重复订阅返回已有流且 created 为 false
// 用户只能订阅自己的消息流，越权返回 Forbidden
func (m *SessionManager) Subscribe(key ChannelKey) (*eventbus.Subscription, bool, error) {
	switch key.Kind {
	case KindMessages:
		if key.Param == "" {
			key.Param = m.userUuid
		}
		if key.Param != m.userUuid {
			return nil, false, errorx.New(errorx.CodeForbidden, "无权订阅他人的消息流")
		}
	case KindNotifications:
		key.Param = ""
	default:
		return nil, false, errorx.Newf(errorx.CodeInvalidParam, "未知的订阅通道 %s", key.Kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, false, errorx.New(errorx.CodeServerBusy, "订阅会话已关闭")
	}
	if sub, ok := m.subs[key]; ok {
		return sub, false, nil
	}
	sub := m.bus.Subscribe(key.Topic())
	m.subs[key] = sub
	return sub, true, nil
}

// Unsubscribe 取消订阅并关闭底层订阅流，返回是否实际存在该订阅
func (m *SessionManager) Unsubscribe(key ChannelKey) bool {
	if key.Kind == KindMessages && key.Param == "" {
		key.Param = m.userUuid
	}
	if key.Kind == KindNotifications {
		key.Param = ""
	}

	m.mu.Lock()
	sub, ok := m.subs[key]
	if ok {
		delete(m.subs, key)
	}
	m.mu.Unlock()

	if ok {
		sub.Close()
	}
	return ok
}

// CloseAll 终结会话并关闭全部订阅流（幂等）
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	subs := m.subs
	m.subs = make(map[ChannelKey]*eventbus.Subscription)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
