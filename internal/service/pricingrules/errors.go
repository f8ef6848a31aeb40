package pricingrules

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило ценообразования не найдено
	ErrRuleNotFound = errors.New("pricing rule not found")

	// ErrDuplicateRule возвращается при создании правила, полностью совпадающего с действующим
	ErrDuplicateRule = errors.New("duplicate pricing rule")

	// ErrInvalidFeeSplit возвращается, когда доли ментора и платформы не дают 100%
	ErrInvalidFeeSplit = errors.New("fee percentages must sum to 100")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
