package catalogservice

import "errors"

var (
	// ErrMaterialNotFound возвращается, когда материал не найден в каталоге
	ErrMaterialNotFound = errors.New("catalogservice client: material not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что каталог недоступен и уровень материала неизвестен
	ErrServiceDegraded = errors.New("catalogservice unavailable: graceful degradation applied")
)
