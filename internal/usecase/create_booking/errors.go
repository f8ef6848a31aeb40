package create_booking

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено или неактивно
	ErrScheduleNotFound = errors.New("create_booking: schedule not found")

	// ErrOwnSchedule возвращается при попытке ментора забронировать собственное расписание
	ErrOwnSchedule = errors.New("create_booking: cannot book own schedule")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата выходит за горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда до начала слота осталось меньше минимального времени
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNoLongerOffered возвращается, когда запрошенный слот больше не
	// входит в окна доступности ментора (окна изменились после показа слотов)
	ErrSlotNoLongerOffered = errors.New("create_booking: slot is no longer offered")

	// ErrCapacityExceeded возвращается, когда все места в слоте заняты
	ErrCapacityExceeded = errors.New("create_booking: slot capacity exceeded")

	// ErrNoApplicablePricingRule возвращается, когда для сессии нет действующего правила цены
	ErrNoApplicablePricingRule = errors.New("create_booking: no applicable pricing rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
