package domain

import "context"

// EventPublisher 定价事件发布接口，由消息基础设施实现。
type EventPublisher interface {
	PublishBatchPriced(ctx context.Context, event BatchPricedEvent) error
}
