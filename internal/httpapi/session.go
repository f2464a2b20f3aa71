package httpapi

import (
	"net/http"
	"strings"
	"time"

	"gatewayd/pkg/types"
)

// SessionCookie is the cookie carrying the console session token.
const SessionCookie = "gatewayd_session"

func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// requireSession rejects requests without a valid session token.
func (s *server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Gate == nil {
			next.ServeHTTP(w, r)
			return
		}
		tok := sessionToken(r)
		if tok == "" {
			incSessionRejection("missing")
			writeJSONError(w, http.StatusUnauthorized, "session is locked")
			return
		}
		if _, err := s.Gate.Verify(tok); err != nil {
			incSessionRejection("invalid")
			writeJSONError(w, http.StatusUnauthorized, "session is locked")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// @Summary     Session state
// @Description Reports whether the caller's session is unlocked.
// @Tags        session
// @Produce     json
// @Success     200 {object} types.SessionResponse
// @Router      /api/session [get]
func (s *server) getSession(w http.ResponseWriter, r *http.Request) {
	if s.Gate == nil {
		writeJSON(w, r, http.StatusOK, types.SessionResponse{Unlocked: true})
		return
	}
	exp, err := s.Gate.Verify(sessionToken(r))
	if err != nil {
		writeJSON(w, r, http.StatusOK, types.SessionResponse{Unlocked: false})
		return
	}
	writeJSON(w, r, http.StatusOK, types.SessionResponse{Unlocked: true, ExpiresAt: exp.Unix()})
}

// @Summary     Unlock the console
// @Tags        session
// @Accept      json
// @Produce     json
// @Param       body body types.LoginRequest true "Access secret"
// @Success     200 {object} types.SessionResponse
// @Failure     401 {object} types.ErrorResponse
// @Router      /api/session [post]
func (s *server) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req types.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if s.Gate == nil {
		writeJSON(w, r, http.StatusOK, types.SessionResponse{Unlocked: true})
		return
	}
	sess, err := s.Gate.Login(req.Secret)
	if err != nil {
		incSessionRejection("bad_secret")
		status := writeError(w, err)
		logOp(r, "login", status, start, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(s.Gate.TTL() / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, r, http.StatusOK, types.SessionResponse{Unlocked: true, Token: sess.Token, ExpiresAt: sess.ExpiresAt.Unix()})
	logOp(r, "login", http.StatusOK, start, nil)
}

// @Summary     Lock the console
// @Tags        session
// @Produce     json
// @Success     200 {object} types.SessionResponse
// @Router      /api/session [delete]
func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, r, http.StatusOK, types.SessionResponse{Unlocked: false})
}
