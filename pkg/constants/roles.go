package constants

// --- РОЛИ ПОЛЬЗОВАТЕЛЕЙ (Совпадает с кодами в БД) ---

type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"
	RoleCustomerService Role = "CUSTOMER_SERVICE"
	RoleDeveloper       Role = "DEVELOPER"
	RoleFinance         Role = "FINANCE"
)

func (r Role) String() string {
	return string(r)
}

var AllRoles = []Role{
	RoleSuperAdmin,
	RoleCustomerService,
	RoleDeveloper,
	RoleFinance,
}

func IsValidRole(code string) bool {
	for _, r := range AllRoles {
		if string(r) == code {
			return true
		}
	}
	return false
}

//============== ПРЕФИКС БИЗНЕС-НОМЕРА ЗАКАЗА ==============

// Формат: PROJ-YYYYMMDD-XXXX
const OrderUIDPrefix = "PROJ"

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis/кеше.
const (
	// Кеш роли пользователя для авторизации.
	// Формат: user_role:<userID> -> код роли
	CacheKeyUserRole = "user_role:%d"
)
