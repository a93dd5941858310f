package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware ограничивает время обработки REST-запроса. Вешается только на
// REST-subrouter: WebSocket-соединения живут дольше любого request timeout.
func Middleware(requestTimeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// r.Context() = ongoingCtx (из BaseContext)
			ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
