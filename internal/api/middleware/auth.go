package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
)

// Заголовки, которыми пользуется Auth при выключенной проверке токена (локальная разработка)
const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"
)

// Claims полезная нагрузка токена сервиса аккаунтов
// sub - ID пользователя
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токен и кладет пользователя в контекст
type Auth struct {
	secret  []byte
	issuer  string
	enabled bool
}

// NewAuth создает middleware аутентификации
func NewAuth(secret, issuer string, enabled bool) *Auth {
	return &Auth{
		secret:  []byte(secret),
		issuer:  issuer,
		enabled: enabled,
	}
}

// Handler middleware для защищенных маршрутов
func (a *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			userID string
			role   domain.Role
		)

		if a.enabled {
			claims, err := a.parse(r.Header.Get("Authorization"))
			if err != nil {
				handlers.RespondUnauthorized(w, err.Error())
				return
			}
			userID, role = claims.Subject, domain.Role(claims.Role)
		} else {
			userID, role = r.Header.Get(HeaderUserID), domain.Role(r.Header.Get(HeaderRole))
			if userID == "" {
				handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
				return
			}
			if role == "" {
				role = domain.RoleCustomer
			}
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), userID, role)))
	})
}

func (a *Auth) parse(header string) (*Claims, error) {
	if header == "" {
		return nil, errors.New("authorization header is required")
	}

	// Bearer <token>
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, errors.New("invalid authorization header format")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// WithIdentity кладет пользователя в контекст
func WithIdentity(ctx context.Context, userID string, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetRole достает роль пользователя из контекста
func GetRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	return role, ok
}

// GetIdentity достает ID и роль пользователя из контекста
func GetIdentity(ctx context.Context) (string, domain.Role, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return "", "", false
	}
	role, _ := GetRole(ctx)
	return userID, role, true
}

// RequireRole пропускает только пользователей с одной из ролей
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "отсутствует роль пользователя")
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, "доступ запрещен")
		})
	}
}
