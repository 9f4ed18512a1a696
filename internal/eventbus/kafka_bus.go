// kafka_bus.go
// 核心职责：Kafka 模式下的事件总线实现
// 1. 发布端将事件写入 Kafka，key 为业务主题，保证同主题事件有序
// 2. 消费端以独立消费组读取全部事件，回放到本地 ChannelBus 投递给订阅者
// 3. 订阅 API 与单机模式完全一致，部署多节点时事件可跨节点广播
package eventbus

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"nuri_social_server/internal/config"
)

// KafkaBus Bus 接口的 Kafka 实现
type KafkaBus struct {
	producer *kafka.Writer
	consumer *kafka.Reader
	local    *ChannelBus
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewKafkaBus 创建 Kafka 事件总线并启动消费循环
// 每个节点使用随机消费组 ID，使所有节点都能收到全量事件
func NewKafkaBus(conf *config.KafkaConfig) *KafkaBus {
	producer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.HostPort),
		Topic:                  conf.EventTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           conf.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{conf.HostPort},
		Topic:          conf.EventTopic,
		CommitInterval: conf.Timeout * time.Second,
		GroupID:        "event_bus_" + uuid.NewString(),
		StartOffset:    kafka.LastOffset,
	})

	ctx, cancel := context.WithCancel(context.Background())
	b := &KafkaBus{
		producer: producer,
		consumer: consumer,
		local:    NewChannelBus(),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go b.consumeLoop(ctx)
	return b
}

// Publish 将事件写入 Kafka，key 为业务主题
func (b *KafkaBus) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(topic),
		Value: payload,
	})
}

// Subscribe 订阅主题，投递由本地回放完成
func (b *KafkaBus) Subscribe(topic string) *Subscription {
	return b.local.Subscribe(topic)
}

// consumeLoop 后台死循环：从 Kafka 拿事件并回放到本地总线
func (b *KafkaBus) consumeLoop(ctx context.Context) {
	defer close(b.done)
	for {
		msg, err := b.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			zap.L().Error("读取 Kafka 事件失败", zap.Error(err))
			continue
		}
		if err := b.local.Publish(ctx, string(msg.Key), msg.Value); err != nil {
			zap.L().Error("回放 Kafka 事件失败", zap.Error(err))
		}
	}
}

// Close 停止消费循环并关闭 Kafka 资源与本地订阅流
func (b *KafkaBus) Close() error {
	b.cancel()
	<-b.done
	if err := b.producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := b.consumer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	return b.local.Close()
}

// 确保 KafkaBus 实现了 Bus 接口
var _ Bus = (*KafkaBus)(nil)
