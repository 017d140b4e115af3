package domain

// EventPublisher публикует уведомления о событиях магазина во внешнюю шину.
// Публикация — best effort: сбой публикации не откатывает уже сохранённый заказ.
type EventPublisher interface {
	// OrderCreated сообщает о созданном заказе.
	OrderCreated(order Order) error
	// StockDecremented сообщает о списании стока по товарам.
	StockDecremented(lines []ProductQuantity) error
}
