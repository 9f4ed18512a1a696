// Package eventbus 实现进程内事件总线
// 核心职责：主题化的发布/订阅
// 1. 发布方按主题发布字节负载，不关心有无订阅者
// 2. 订阅方拿到独立的订阅流，多个订阅互不影响
// 3. 后端可插拔：channel 模式单机直达，kafka 模式跨节点广播
package eventbus

import (
	"context"
	"sync"
)

// Bus 事件总线接口
// Service 层依赖此接口而非具体后端实现
type Bus interface {
	// Publish 向主题发布一条事件负载
	// 无订阅者时事件直接丢弃，不报错
	Publish(ctx context.Context, topic string, payload []byte) error
	// Subscribe 订阅主题，返回独立的订阅流
	Subscribe(topic string) *Subscription
	// Close 关闭总线并终结所有订阅流
	Close() error
}

// Subscription 单个订阅流
// C() 返回的通道在订阅关闭后会被 close，消费方以通道关闭作为终止信号
type Subscription struct {
	topic     string
	ch        chan []byte
	closeOnce sync.Once
	detach    func(*Subscription)
}

// C 返回事件接收通道
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Topic 返回订阅的主题
func (s *Subscription) Topic() string {
	return s.topic
}

// Close 关闭订阅流（幂等，可安全地多次调用）
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		if s.detach != nil {
			s.detach(s)
		}
		close(s.ch)
	})
}
