package middleware

import (
	"context"
	"net/http"
	"time"

	"nadir/globals"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const sessionCookie = "session_id"

// Session scopes requests to a UI session. New visitors get a fresh uuid
// cookie; the id selects their in-memory cart. There is no authentication
// behind it, only session scoping.
func Session(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sid := ""
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}

		ctx := context.WithValue(r.Context(), globals.SessionIDKey, sid)
		next(w, r.WithContext(ctx), ps)
	}
}

// SessionID returns the session id placed by Session, falling back to the
// cookie for handlers mounted outside the middleware chain.
func SessionID(r *http.Request) string {
	if sid, ok := r.Context().Value(globals.SessionIDKey).(string); ok && sid != "" {
		return sid
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}
