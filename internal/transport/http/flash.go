package httptransport

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"
)

// flashCookie holds a one-shot message shown on the next page render.
const flashCookie = "keneviz_flash"

// SetFlash stores a message for the next page load.
func SetFlash(c *gin.Context, message string) {
	encoded := base64.URLEncoding.EncodeToString([]byte(message))
	c.SetCookie(flashCookie, encoded, 60, "/", "", false, true)
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(c *gin.Context) string {
	encoded, err := c.Cookie(flashCookie)
	if err != nil || encoded == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(decoded)
}
