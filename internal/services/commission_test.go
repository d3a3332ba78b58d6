package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order-management/internal/entities"
	"order-management/pkg/constants"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testOrder(finalPrice *decimal.Decimal, override *entities.CommissionRateOverride) *entities.Order {
	developerID := uint64(2)
	return &entities.Order{
		ID:           10,
		OrderUID:     "PROJ-20250114-7K3M",
		FinalPrice:   finalPrice,
		CreatorID:    1,
		DeveloperID:  &developerID,
		RateOverride: override,
	}
}

func testCreator(rate *decimal.Decimal) *entities.User {
	return &entities.User{ID: 1, Username: "cs.anna", Role: constants.RoleCustomerService, DefaultCommissionRate: rate}
}

func testDeveloper(rate *decimal.Decimal) *entities.User {
	return &entities.User{ID: 2, Username: "dev.ivan", Role: constants.RoleDeveloper, DefaultCommissionRate: rate}
}

func newTestCommissionService() *CommissionService {
	return &CommissionService{}
}

func TestCalculate_BothParticipants(t *testing.T) {
	svc := newTestCommissionService()
	order := testOrder(decPtr("1000.00"), nil)

	commissions := svc.Calculate(order, testCreator(decPtr("10.00")), testDeveloper(decPtr("15.00")))
	require.Len(t, commissions, 2, "должно быть две комиссии: создателю и разработчику")

	assert.Equal(t, uint64(1), commissions[0].UserID)
	assert.True(t, commissions[0].Amount.Equal(decimal.RequireFromString("100.00")),
		"комиссия создателя: ожидалось 100.00, получено %s", commissions[0].Amount)
	assert.Equal(t, constants.RoleCustomerService, commissions[0].RoleAtTime)

	assert.Equal(t, uint64(2), commissions[1].UserID)
	assert.True(t, commissions[1].Amount.Equal(decimal.RequireFromString("150.00")),
		"комиссия разработчика: ожидалось 150.00, получено %s", commissions[1].Amount)
	assert.Equal(t, constants.RoleDeveloper, commissions[1].RoleAtTime)

	for _, c := range commissions {
		assert.Equal(t, order.ID, c.OrderID)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	svc := newTestCommissionService()
	order := testOrder(decPtr("1234.56"), nil)
	creator := testCreator(decPtr("10.00"))
	developer := testDeveloper(decPtr("15.00"))

	first := svc.Calculate(order, creator, developer)
	second := svc.Calculate(order, creator, developer)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Amount.Equal(second[i].Amount), "повторный расчет должен давать те же суммы")
		assert.Equal(t, first[i].UserID, second[i].UserID)
	}
}

func TestCalculate_NoFinalPrice(t *testing.T) {
	svc := newTestCommissionService()

	commissions := svc.Calculate(testOrder(nil, nil), testCreator(decPtr("10.00")), testDeveloper(decPtr("15.00")))
	assert.Empty(t, commissions, "без итоговой цены комиссий нет")
}

func TestCalculate_NonPositiveFinalPrice(t *testing.T) {
	svc := newTestCommissionService()

	for _, price := range []string{"0", "-100.00"} {
		commissions := svc.Calculate(testOrder(decPtr(price), nil), testCreator(decPtr("10.00")), testDeveloper(decPtr("15.00")))
		assert.Empty(t, commissions, "цена %s не должна давать комиссий", price)
	}
}

func TestCalculate_OverrideBeatsDefault(t *testing.T) {
	svc := newTestCommissionService()
	override := &entities.CommissionRateOverride{
		CSRate:   decPtr("20.00"),
		TechRate: decPtr("5.00"),
	}
	order := testOrder(decPtr("1000.00"), override)

	commissions := svc.Calculate(order, testCreator(decPtr("10.00")), testDeveloper(decPtr("15.00")))
	require.Len(t, commissions, 2)

	assert.True(t, commissions[0].Amount.Equal(decimal.RequireFromString("200.00")),
		"особая ставка должна перекрывать дефолтную: ожидалось 200.00, получено %s", commissions[0].Amount)
	assert.True(t, commissions[1].Amount.Equal(decimal.RequireFromString("50.00")),
		"особая ставка должна перекрывать дефолтную: ожидалось 50.00, получено %s", commissions[1].Amount)
}

func TestCalculate_PartialOverride(t *testing.T) {
	svc := newTestCommissionService()
	override := &entities.CommissionRateOverride{CSRate: decPtr("20.00")}
	order := testOrder(decPtr("1000.00"), override)

	commissions := svc.Calculate(order, testCreator(decPtr("10.00")), testDeveloper(decPtr("15.00")))
	require.Len(t, commissions, 2)

	assert.True(t, commissions[0].Amount.Equal(decimal.RequireFromString("200.00")))
	// Для разработчика override не задан - действует его дефолтная ставка.
	assert.True(t, commissions[1].Amount.Equal(decimal.RequireFromString("150.00")))
}

// Нулевая ставка - это заданная ставка: участник получает строку
// с нулевой суммой, а не пропускается.
func TestCalculate_ZeroRateProducesZeroLine(t *testing.T) {
	svc := newTestCommissionService()
	override := &entities.CommissionRateOverride{CSRate: decPtr("0.00")}
	order := testOrder(decPtr("1000.00"), override)

	commissions := svc.Calculate(order, testCreator(decPtr("10.00")), testDeveloper(decPtr("15.00")))
	require.Len(t, commissions, 2, "нулевая особая ставка не должна убирать строку создателя")

	assert.Equal(t, uint64(1), commissions[0].UserID)
	assert.True(t, commissions[0].Amount.IsZero(), "ставка 0 дает комиссию 0.00, получено %s", commissions[0].Amount)
	assert.True(t, commissions[1].Amount.Equal(decimal.RequireFromString("150.00")))
}

func TestCalculate_NoRateSkipsParticipant(t *testing.T) {
	svc := newTestCommissionService()
	order := testOrder(decPtr("1000.00"), nil)

	commissions := svc.Calculate(order, testCreator(nil), testDeveloper(decPtr("15.00")))
	require.Len(t, commissions, 1, "создатель без ставки пропускается")
	assert.Equal(t, uint64(2), commissions[0].UserID)
}

// Создатель, сменивший роль, комиссию не получает:
// важна текущая роль, а не роль на момент создания заказа.
func TestCalculate_CreatorRoleChanged(t *testing.T) {
	svc := newTestCommissionService()
	order := testOrder(decPtr("1000.00"), nil)

	creator := testCreator(decPtr("10.00"))
	creator.Role = constants.RoleFinance

	commissions := svc.Calculate(order, creator, testDeveloper(decPtr("15.00")))
	require.Len(t, commissions, 1)
	assert.Equal(t, uint64(2), commissions[0].UserID)
}

func TestCalculate_NoDeveloper(t *testing.T) {
	svc := newTestCommissionService()
	order := testOrder(decPtr("1000.00"), nil)
	order.DeveloperID = nil

	commissions := svc.Calculate(order, testCreator(decPtr("10.00")), nil)
	require.Len(t, commissions, 1, "без разработчика считается только комиссия создателя")
	assert.Equal(t, uint64(1), commissions[0].UserID)
}

func TestCalculate_FractionalAmounts(t *testing.T) {
	svc := newTestCommissionService()
	order := testOrder(decPtr("999.99"), nil)

	commissions := svc.Calculate(order, testCreator(decPtr("10.00")), testDeveloper(decPtr("15.00")))
	require.Len(t, commissions, 2)

	assert.True(t, commissions[0].Amount.Equal(decimal.RequireFromString("99.999")),
		"точность не должна теряться до записи в БД: получено %s", commissions[0].Amount)
}
