package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"opsCommandCenter/internal/auth"
)

// SessionCookie is the cookie holding the signed session token.
const SessionCookie = "opscc_session"

const identityCtxKey = "identity"

// SignIn verifies the handle/password pair and, on success, issues a session
// cookie. Bad credentials and unknown handles both answer 401 without
// distinguishing which part was wrong.
func (h *Handlers) SignIn(c *gin.Context) {
	var req struct {
		Handle   string `json:"handle"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handle and password are required"})
		return
	}
	req.Handle = strings.TrimSpace(req.Handle)
	if req.Handle == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handle and password are required"})
		return
	}

	id, err := h.Authenticator.Authenticate(c.Request.Context(), req.Handle, req.Password)
	if err != nil {
		slog.Error("authenticate", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.IssueSession(id, h.Cfg.Auth.SessionSecret, h.Cfg.Auth.SessionTTL)
	if err != nil {
		slog.Error("issue session", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(h.Cfg.Auth.SessionTTL.Seconds()), "/", "", false, true)
	slog.Info("signed in", "handle", id.Handle, "access_level", id.AccessLevel)
	c.JSON(http.StatusOK, id)
}

// SignOut tears the session down by clearing the cookie.
func (h *Handlers) SignOut(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// WhoAmI returns the signed-in identity.
func (h *Handlers) WhoAmI(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, id)
}

// RequireSession rejects requests without a valid session cookie and stashes
// the identity for downstream handlers.
func RequireSession(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		id, err := auth.ParseSession(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or invalid"})
			return
		}
		c.Set(identityCtxKey, id)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func identityFrom(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(identityCtxKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok
}
