package get_available_slots

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено или не принадлежит ментору
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidDateRange возвращается при некорректном периоде запроса
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrDateTooFarInFuture возвращается, когда период выходит за горизонт бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
