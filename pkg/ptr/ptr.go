// Package ptr хелперы для работы с указателями
package ptr

// Ptr возвращает указатель на значение
func Ptr[T any](v T) *T {
	return &v
}
