package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jpkrishna28/mls-point-locator/internal/auth"
	"github.com/jpkrishna28/mls-point-locator/internal/config"
	"github.com/jpkrishna28/mls-point-locator/internal/middleware"
	"github.com/jpkrishna28/mls-point-locator/internal/session"
	"github.com/jpkrishna28/mls-point-locator/internal/utils"
)

// AuthHandler bundles dependencies for the login/logout endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Verifier auth.CredentialVerifier
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, v auth.CredentialVerifier, s session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Verifier: v, Sessions: s}
}

type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login checks the submitted credentials and starts a session. The failure
// message is the same whether the username or the password was wrong, so
// the endpoint cannot be used to enumerate accounts. There is no lockout
// or backoff on repeated failures.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "username/password required"})
	}

	if !h.Verifier.Verify(req.Username, req.Password) {
		log.Printf("failed login attempt for username: %q", req.Username)
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid username or password"})
	}

	sess, err := h.Sessions.Create(c.Request().Context(), req.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "create session failed"})
	}
	token, err := utils.NewSessionToken(h.Cfg.SessionSecret, sess.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue session failed"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Printf("user %q logged in successfully", req.Username)

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"username":   sess.Username,
		"login_time": sess.LoginTime.Format("2006-01-02 15:04:05"),
		"token":      token, // for non-browser clients that cannot carry cookies
	})
}

// LoginStatus is the GET side of /login: it reports whether the caller
// already holds a live session so the UI can skip the form.
func (h *AuthHandler) LoginStatus(c echo.Context) error {
	if sess, ok := h.currentSession(c); ok {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": true, "username": sess})
	}
	return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
}

// Logout destroys the caller's session, if any, and clears the cookie.
// It deliberately succeeds even without a session, like the original
// logout page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if raw := h.rawToken(c); raw != "" {
		if sid, err := utils.ParseSessionToken(h.Cfg.SessionSecret, raw); err == nil {
			if sess, err := h.Sessions.Get(c.Request().Context(), sid); err == nil {
				log.Printf("user %q logged out", sess.Username)
			}
			_ = h.Sessions.Delete(c.Request().Context(), sid)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// User returns the current session identity; it sits behind the gate so
// username is always present.
func (h *AuthHandler) User(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"username":  c.Get("username"),
		"timestamp": time.Now().UTC().Format("2006-01-02 15:04:05"),
	})
}

func (h *AuthHandler) rawToken(c echo.Context) string {
	if ck, err := c.Cookie(middleware.SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	header := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (h *AuthHandler) currentSession(c echo.Context) (string, bool) {
	raw := h.rawToken(c)
	if raw == "" {
		return "", false
	}
	sid, err := utils.ParseSessionToken(h.Cfg.SessionSecret, raw)
	if err != nil {
		return "", false
	}
	sess, err := h.Sessions.Get(c.Request().Context(), sid)
	if err != nil {
		return "", false
	}
	return sess.Username, true
}
