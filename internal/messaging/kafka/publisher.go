package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Publisher адаптирует Producer к доменному порту EventPublisher.
type Publisher struct {
	producer *Producer
}

// NewPublisher оборачивает producer доменным портом.
func NewPublisher(producer *Producer) *Publisher {
	return &Publisher{producer: producer}
}

// OrderCreated публикует событие о созданном заказе; ключ — ID заказа,
// чтобы события одного заказа попадали в одну партицию.
func (p *Publisher) OrderCreated(order domain.Order) error {
	items := make([]OrderItemEvent, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemEvent{
			ProductID:  item.ProductID,
			PriceMinor: item.PriceMinor,
			Qty:        item.Qty,
		})
	}

	event := OrderCreatedEvent{
		EventType:  EventTypeOrderCreated,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		TotalMinor: order.TotalMinor(),
		Items:      items,
		Timestamp:  time.Now().UTC(),
	}
	return p.producer.PublishEvent(TopicOrderEvents, order.ID, event)
}

// StockDecremented публикует событие о списании стока.
func (p *Publisher) StockDecremented(lines []domain.ProductQuantity) error {
	eventLines := make([]StockLineEvent, 0, len(lines))
	key := ""
	for _, line := range lines {
		if key == "" {
			key = line.ProductID
		}
		eventLines = append(eventLines, StockLineEvent{
			ProductID: line.ProductID,
			Qty:       line.Qty,
		})
	}

	event := StockDecrementedEvent{
		EventType: EventTypeStockDecremented,
		Lines:     eventLines,
		Timestamp: time.Now().UTC(),
	}
	return p.producer.PublishEvent(TopicStockEvents, key, event)
}

var _ domain.EventPublisher = (*Publisher)(nil)
