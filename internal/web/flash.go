package web

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// Flash categories
const (
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

const pendingFlashesKey = "pendingFlashes"

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AddFlash queues a message for the next page the browser renders
func AddFlash(c *gin.Context, category, message string) {
	flashes := append(pending(c), Flash{Category: category, Message: message})
	c.Set(pendingFlashesKey, flashes)

	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	SetCookie(c, FlashCookie, base64.RawURLEncoding.EncodeToString(data), 0)
}

// PopFlashes returns queued messages and clears them
func PopFlashes(c *gin.Context) []Flash {
	flashes := pending(c)
	c.Set(pendingFlashesKey, []Flash(nil))

	if raw, err := c.Cookie(FlashCookie); err == nil && raw != "" {
		ClearCookie(c, FlashCookie)
		if data, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
			var stored []Flash
			if json.Unmarshal(data, &stored) == nil {
				flashes = append(stored, flashes...)
			}
		}
	}

	return flashes
}

func pending(c *gin.Context) []Flash {
	if v, ok := c.Get(pendingFlashesKey); ok {
		if flashes, ok := v.([]Flash); ok {
			return flashes
		}
	}
	return nil
}
