package constants

// --- СТАТУСЫ ЗАКАЗОВ (Совпадает с кодами в БД) ---

type OrderStatus string

const (
	StatusPendingAssignment OrderStatus = "PENDING_ASSIGNMENT" // Ожидает назначения
	StatusPendingPayment    OrderStatus = "PENDING_PAYMENT"    // Ожидает оплаты
	StatusInDevelopment     OrderStatus = "IN_DEVELOPMENT"     // В разработке
	StatusShipped           OrderStatus = "SHIPPED"            // Отправлен
	StatusReceived          OrderStatus = "RECEIVED"           // Получен клиентом
	StatusPendingSettlement OrderStatus = "PENDING_SETTLEMENT" // Готов к расчету
	StatusVerified          OrderStatus = "VERIFIED"           // Проверен финансами
	StatusSettled           OrderStatus = "SETTLED"            // Рассчитан
	StatusCancelled         OrderStatus = "CANCELLED"          // Отменен
)

func (s OrderStatus) String() string {
	return string(s)
}

// Финальные статусы: заказ в них блокируется навсегда.
var FinalStatuses = []OrderStatus{
	StatusSettled,
	StatusCancelled,
}

func IsFinalStatus(s OrderStatus) bool {
	for _, fs := range FinalStatuses {
		if s == fs {
			return true
		}
	}
	return false
}

// AllStatuses - полный список, используется валидацией и тестами.
var AllStatuses = []OrderStatus{
	StatusPendingAssignment,
	StatusPendingPayment,
	StatusInDevelopment,
	StatusShipped,
	StatusReceived,
	StatusPendingSettlement,
	StatusVerified,
	StatusSettled,
	StatusCancelled,
}

func IsValidStatus(code string) bool {
	for _, s := range AllStatuses {
		if string(s) == code {
			return true
		}
	}
	return false
}
