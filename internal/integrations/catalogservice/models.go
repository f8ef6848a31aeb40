package catalogservice

// Material модель учебного материала из каталога
type Material struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Level    string `json:"level"` // beginner | intermediate | advanced
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
