package listeners

import (
	"context"

	"go.uber.org/zap"

	"order-management/internal/events"
	"order-management/pkg/eventbus"
)

// OrderAuditListener пишет след переходов статусов в лог.
// Переход к моменту вызова уже закоммичен, слушатель ни на что не влияет.
type OrderAuditListener struct {
	logger *zap.Logger
}

func NewOrderAuditListener(logger *zap.Logger) *OrderAuditListener {
	return &OrderAuditListener{logger: logger}
}

func (l *OrderAuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderStatusChangedEventName, l.handleStatusChanged)
	l.logger.Info("OrderAuditListener подписан на событие 'order.status.changed'")
}

func (l *OrderAuditListener) handleStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderStatusChangedEvent)
	if !ok {
		return nil
	}

	l.logger.Info("Аудит: переход статуса заказа",
		zap.String("event_id", e.EventID),
		zap.Uint64("order_id", e.OrderID),
		zap.String("order_uid", e.OrderUID),
		zap.String("from", string(e.FromStatus)),
		zap.String("to", string(e.ToStatus)),
		zap.Uint64("actor_id", e.ActorID),
		zap.String("actor_role", string(e.ActorRole)),
		zap.Time("occurred_at", e.OccurredAt),
	)
	return nil
}
