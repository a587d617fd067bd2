package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guiladg/wacookieexpress/internal/token"
)

// Cookie policy: SameSite=None plus Secure so the tokens survive cross-site
// requests from the SPA, HTTP-only for access and refresh. The control
// cookie stays script-readable so the client can detect its own session.
// The same policy applies on login and refresh.

func (h *AuthHandler) setSessionCookies(c *gin.Context, t *token.SessionTokens) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("access_token", t.Access, int(h.AccessTTL.Seconds()), "/", "", true, true)
	c.SetCookie("refresh_token", t.Refresh, int(h.RefreshTTL.Seconds()), "/", "", true, true)
	c.SetCookie("control_token", t.Control, int(h.RefreshTTL.Seconds()), "/", "", true, false)
}

// clearCookie expires a cookie almost immediately.
func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, "", 1, "/", "", true, name != "control_token")
}
