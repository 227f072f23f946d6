package domain

// Статусы бронирования
const (
	StatusPaid BookingStatus = "paid"
	StatusFree BookingStatus = "free"
)

// Роли пользователей, приходящие в claim "role"
const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
)

// PointsPerFreeWash количество оплаченных моек, дающее одну бесплатную
const PointsPerFreeWash = 10

// Business validation constants
const (
	MinActiveBays      = 1
	MaxServiceDuration = 480 // 8 hours
	MaxBookingsRange   = 92  // дней в одном запросе менеджера
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
