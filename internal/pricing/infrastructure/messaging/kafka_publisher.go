package messaging

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// KafkaEventPublisher 把定价事件发布到 Kafka。
type KafkaEventPublisher struct {
	writer *kafkago.Writer
}

// NewKafkaEventPublisher 创建发布器。
func NewKafkaEventPublisher(brokers []string, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkago.LeastBytes{},
		},
	}
}

// PublishBatchPriced 发布批量定价完成事件，以批次 ID 为消息键。
func (p *KafkaEventPublisher) PublishBatchPriced(ctx context.Context, event domain.BatchPricedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(event.BatchID),
		Value: payload,
	})
}

// Close 关闭底层 writer。
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
