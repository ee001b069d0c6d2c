package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	FlashCookie   = "flash"

	secureCookiesKey = "secureCookies"
)

// CookieDefaults marks every cookie written during the request as Secure when
// secure is set.
func CookieDefaults(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(secureCookiesKey, secure)
		c.Next()
	}
}

// SetCookie writes an HttpOnly, SameSite=Lax cookie on the root path. A
// maxAge of 0 makes a browser-session cookie, negative deletes it.
func SetCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", c.GetBool(secureCookiesKey), true)
}

// ClearCookie expires name in the browser
func ClearCookie(c *gin.Context, name string) {
	SetCookie(c, name, "", -1)
}
