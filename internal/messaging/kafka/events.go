package kafka

import "time"

// EventType определяет тип события магазина.
type EventType string

const (
	// EventTypeOrderCreated публикуется после успешного сохранения заказа.
	EventTypeOrderCreated EventType = "order.created"
	// EventTypeStockDecremented публикуется после списания стока.
	EventTypeStockDecremented EventType = "stock.decremented"
)

// Topics для Kafka.
const (
	TopicOrderEvents = "storefront.order.events"
	TopicStockEvents = "storefront.stock.events"
)

// OrderItemEvent — позиция заказа в событии.
type OrderItemEvent struct {
	ProductID  string `json:"product_id"`
	PriceMinor int64  `json:"price_minor"`
	Qty        int32  `json:"qty"`
}

// OrderCreatedEvent представляет событие созданного заказа.
type OrderCreatedEvent struct {
	EventType  EventType        `json:"event_type"`
	OrderID    string           `json:"order_id"`
	CustomerID string           `json:"customer_id"`
	TotalMinor int64            `json:"total_minor"`
	Items      []OrderItemEvent `json:"items"`
	Timestamp  time.Time        `json:"timestamp"`
}

// StockLineEvent — одна строка списания в событии.
type StockLineEvent struct {
	ProductID string `json:"product_id"`
	Qty       int32  `json:"qty"`
}

// StockDecrementedEvent представляет событие списания стока.
type StockDecrementedEvent struct {
	EventType EventType        `json:"event_type"`
	Lines     []StockLineEvent `json:"lines"`
	Timestamp time.Time        `json:"timestamp"`
}
