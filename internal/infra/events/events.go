// Package events события для сервиса уведомлений
// События публикуются после успешной смены состояния; доставка
// не гарантируется и никогда не блокирует основной поток
package events

// Routing keys (совпадают с именами очередей)
const (
	KeyScheduleCreated  = "schedule.created"
	KeyScheduleUpdated  = "schedule.updated"
	KeyScheduleDeleted  = "schedule.deleted"
	KeyBookingCreated   = "booking.created"
	KeyBookingConfirmed = "booking.confirmed"
	KeyBookingCancelled = "booking.cancelled"
)

// ScheduleEvent публикуется при создании/изменении/удалении расписания
type ScheduleEvent struct {
	ScheduleID int64  `json:"schedule_id"`
	MentorID   int64  `json:"mentor_id"`
	Title      string `json:"title"`
	OccurredAt string `json:"occurred_at"`
}

// BookingEvent публикуется при создании/подтверждении/отмене бронирования
// Содержит достаточно данных, чтобы потребитель не ходил в основную БД
type BookingEvent struct {
	BookingID     int64  `json:"booking_id"`
	MentorID      int64  `json:"mentor_id"`
	StudentID     int64  `json:"student_id"`
	ScheduleID    int64  `json:"schedule_id"`
	ScheduleTitle string `json:"schedule_title"`
	BookingDate   string `json:"booking_date"`
	StartTime     string `json:"start_time"`
	Status        string `json:"status"`
	Price         string `json:"price"`
	OccurredAt    string `json:"occurred_at"`
}
