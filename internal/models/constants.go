package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// IsTerminalStatus reports whether a booking can no longer change state.
// Terminal bookings hold no claim on their room.
func IsTerminalStatus(status string) bool {
	return status == StatusCancelled || status == StatusCompleted
}

const (
	RoomTypeStandard     = "standard"
	RoomTypeDeluxe       = "deluxe"
	RoomTypeSuite        = "suite"
	RoomTypePresidential = "presidential"
)

const (
	// DefaultChatStateTTL время жизни состояния чата по умолчанию
	DefaultChatStateTTL = 24 * 60 * 60 // 24 часа в секундах

	// DefaultMaxAdvanceDays максимальный горизонт бронирования
	DefaultMaxAdvanceDays = 365

	// ChatRateLimitMessages количество сообщений чата в окне
	ChatRateLimitMessages = 20

	// ChatRateLimitWindow окно ограничения частоты сообщений
	ChatRateLimitWindow = 60 // 1 минута в секундах

	// HousekeepingQueueSize размер очереди воркера
	HousekeepingQueueSize = 128
)

// KnownRoomTypes lists the types the service understands, in display order.
var KnownRoomTypes = []string{
	RoomTypeStandard,
	RoomTypeDeluxe,
	RoomTypeSuite,
	RoomTypePresidential,
}

func IsKnownRoomType(t string) bool {
	for _, known := range KnownRoomTypes {
		if known == t {
			return true
		}
	}
	return false
}
