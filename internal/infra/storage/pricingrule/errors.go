package pricingrule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило ценообразования не найдено
	ErrRuleNotFound = errors.New("pricingrule.repository: pricing rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pricingrule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pricingrule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pricingrule.repository: failed to scan row")
)
