// Package middleware промежуточные обработчики HTTP запросов
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/MNT-BookingService/internal/api/handlers"
)

const (
	// RoleStudent обычный пользователь платформы
	RoleStudent = "student"
	// RoleMentor ментор с расписаниями
	RoleMentor = "mentor"
	// RoleAdmin администратор платформы
	RoleAdmin = "admin"
)

const (
	msgMissingToken  = "отсутствует токен авторизации"
	msgInvalidToken  = "некорректный токен авторизации"
	msgAccessDenied  = "недостаточно прав"
	msgInvalidSecret = "некорректный секрет вебхука"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// Auth проверяет Bearer токен (HS256) и кладёт userID и роль в контекст запроса
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			// sub - числовой ID пользователя; JSON числа приходят как float64
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			role, _ := claims["role"].(string)

			ctx := context.WithValue(r.Context(), userIDKey, int64(sub))
			ctx = context.WithValue(ctx, roleKey, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только пользователей с указанной ролью
// Должен стоять после Auth
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetRole(r.Context()) != role {
				handlers.RespondForbidden(w, msgAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WebhookAuth проверяет общий секрет вебхука в заголовке X-Webhook-Secret
func WebhookAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Webhook-Secret") != secret {
				handlers.RespondUnauthorized(w, msgInvalidSecret)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetRole извлекает роль пользователя из контекста запроса
func GetRole(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}
