package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

// HeaderWebhookSecret заголовок с общим секретом платежного шлюза
const HeaderWebhookSecret = "X-Webhook-Secret"

// RequireSharedSecret пропускает запросы с правильным секретом в заголовке
// Пустой secret закрывает маршрут полностью
func RequireSharedSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderWebhookSecret)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				handlers.RespondUnauthorized(w, "неверный секрет вебхука")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
