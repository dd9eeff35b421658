// Package middleware содержит HTTP middleware сервиса.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EscrowService/internal/api/handlers"
)

type walletKey struct{}

// WalletFromContext возвращает верифицированный wallet-адрес вызывающего.
// Адрес кладется в контекст только после успешной проверки подписи токена.
func WalletFromContext(ctx context.Context) (string, bool) {
	wallet, ok := ctx.Value(walletKey{}).(string)
	return wallet, ok && wallet != ""
}

// withWallet используется в тестах и в Auth
func withWallet(ctx context.Context, wallet string) context.Context {
	return context.WithValue(ctx, walletKey{}, wallet)
}

// Auth возвращает middleware, проверяющий Bearer JWT (HS256).
// Токен подтверждает контроль над wallet-адресом из claim "wallet";
// это наша реализация проверки подписанта на границе HTTP.
func Auth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, "требуется bearer токен")
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				handlers.RespondUnauthorized(w, "недействительный токен")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				handlers.RespondUnauthorized(w, "недействительный токен")
				return
			}
			wallet, _ := claims["wallet"].(string)
			if wallet == "" {
				// Падаем обратно на стандартный subject claim
				wallet, _ = claims["sub"].(string)
			}
			if wallet == "" {
				handlers.RespondUnauthorized(w, "токен не содержит wallet-адрес")
				return
			}

			next.ServeHTTP(w, r.WithContext(withWallet(r.Context(), wallet)))
		})
	}
}
