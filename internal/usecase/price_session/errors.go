package price_session

import "errors"

var (
	// ErrMaterialNotFound возвращается, когда материал не найден в каталоге
	ErrMaterialNotFound = errors.New("price_session: material not found")

	// ErrMaterialInactive возвращается, когда материал снят с публикации
	ErrMaterialInactive = errors.New("price_session: material is not active")

	// ErrNoApplicableRule возвращается, когда для параметров сессии нет правила цены
	ErrNoApplicableRule = errors.New("price_session: no applicable pricing rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("price_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("price_session: internal error")
)
