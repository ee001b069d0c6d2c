// Package web holds the server-rendered view layer: templates, the per-request
// identity, cookies and flash messages.
package web

import (
	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/quicknote/internal/database/models"
)

const requestContextKey = "requestContext"

// RequestContext is the identity resolved once per request. A nil User means
// the request is anonymous.
type RequestContext struct {
	User    *models.User
	Session *models.Session
}

// Authenticated reports whether a user is logged in
func (rc *RequestContext) Authenticated() bool {
	return rc != nil && rc.User != nil
}

// UserID returns the logged in user's id, or 0
func (rc *RequestContext) UserID() uint {
	if !rc.Authenticated() {
		return 0
	}
	return rc.User.ID
}

// Attach stores rc on the gin context
func Attach(c *gin.Context, rc *RequestContext) {
	c.Set(requestContextKey, rc)
}

// Current returns the request's identity; never nil
func Current(c *gin.Context) *RequestContext {
	if v, ok := c.Get(requestContextKey); ok {
		if rc, ok := v.(*RequestContext); ok && rc != nil {
			return rc
		}
	}
	return &RequestContext{}
}
