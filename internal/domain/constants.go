package domain

// Default configuration values
const (
	DefaultHorizonDays             = 30
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
)

// Business validation constants
const (
	MinSessionDurationMinutes   = 15
	MaxSessionDurationMinutes   = 480 // 8 hours
	MinScheduleCapacity         = 1
	MaxScheduleCapacity         = 100
	MaxHorizonDays              = 365 // 1 year
	MaxCancellationReasonLength = 500
	MaxScheduleTitleLength      = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих место в слоте
// Используется для фильтрации при подсчёте доступных мест
var InactiveStatuses = []BookingStatus{
	StatusCancelledByStudent,
	StatusCancelledByMentor,
}

// ActiveStatuses список статусов, занимающих место в слоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
