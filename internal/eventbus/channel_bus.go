// channel_bus.go
// 核心职责：单机模式下的事件总线实现
// 1. 基于 Go channel 直接投递，不依赖外部消息队列
// 2. 慢订阅者不阻塞发布方，缓冲满时丢弃并告警
// 3. 适合小规模或开发环境
package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"nuri_social_server/pkg/constants"
	"nuri_social_server/pkg/errorx"
)

// ChannelBus Bus 接口的进程内实现
type ChannelBus struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	closed bool
}

// NewChannelBus 创建进程内事件总线
func NewChannelBus() *ChannelBus {
	return &ChannelBus{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Publish 向主题的所有订阅流投递负载
// 投递为非阻塞：订阅流缓冲区满则丢弃该条并记录告警
func (b *ChannelBus) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return errorx.New(errorx.CodeServerBusy, "事件总线已关闭")
	}
	for sub := range b.subs[topic] {
		select {
		case sub.ch <- payload:
			// 成功投递
		default:
			zap.L().Warn("事件订阅流缓冲区已满，丢弃事件", zap.String("topic", topic))
		}
	}
	return nil
}

// Subscribe 订阅主题
// 总线关闭后返回的订阅流已处于关闭状态
func (b *ChannelBus) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		topic:  topic,
		ch:     make(chan []byte, constants.CHANNEL_SIZE),
		detach: b.detach,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.Close()
		return sub
	}
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*Subscription]struct{})
	}
	b.subs[topic][sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// detach 将订阅流从注册表摘除，由 Subscription.Close 回调
func (b *ChannelBus) detach(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if set, ok := b.subs[sub.topic]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, sub.topic)
		}
	}
}

// Close 关闭总线并终结所有订阅流
func (b *ChannelBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	all := b.subs
	b.subs = make(map[string]map[*Subscription]struct{})
	b.mu.Unlock()

	// detach 保持只读：注册表已换成空 map，回调摘除只是一次加锁空操作，
	// 与并发的 Subscription.Close 不构成竞争
	for _, set := range all {
		for sub := range set {
			sub.Close()
		}
	}
	return nil
}

// 确保 ChannelBus 实现了 Bus 接口
var _ Bus = (*ChannelBus)(nil)
