package httpx

import (
	"context"
	"net/http"
)

type ctxKey int

const (
	ctxKeyUserID ctxKey = iota
	ctxKeyAdmin
)

// Identity trusts the gateway's identity headers. Token verification
// happens upstream; by the time a request lands here X-User-ID is
// authenticated.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := r.Header.Get("X-User-ID")
		if uid == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "authentication required"})
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUserID, uid)
		ctx = context.WithValue(ctx, ctxKeyAdmin, r.Header.Get("X-User-Role") == "admin")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r) {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserID(r *http.Request) string {
	uid, _ := r.Context().Value(ctxKeyUserID).(string)
	return uid
}

func IsAdmin(r *http.Request) bool {
	admin, _ := r.Context().Value(ctxKeyAdmin).(bool)
	return admin
}
