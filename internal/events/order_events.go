package events

import (
	"time"

	"github.com/google/uuid"

	"order-management/pkg/constants"
)

const OrderStatusChangedEventName = "order.status.changed"

// OrderStatusChangedEvent публикуется после коммита транзакции перехода.
// Слушатели не могут повлиять на сам переход - он уже в БД.
type OrderStatusChangedEvent struct {
	EventID    string
	OrderID    uint64
	OrderUID   string
	FromStatus constants.OrderStatus
	ToStatus   constants.OrderStatus
	ActorID    uint64
	ActorRole  constants.Role
	OccurredAt time.Time
}

func NewOrderStatusChangedEvent(orderID uint64, orderUID string, from, to constants.OrderStatus, actorID uint64, role constants.Role) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		EventID:    uuid.New().String(),
		OrderID:    orderID,
		OrderUID:   orderUID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actorID,
		ActorRole:  role,
		OccurredAt: time.Now(),
	}
}

func (e OrderStatusChangedEvent) Name() string {
	return OrderStatusChangedEventName
}
