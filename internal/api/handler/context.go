package handler

import (
	"github.com/labstack/echo/v4"
)

// sessionID returns the token id stored by the Session middleware, or ""
// when the route is not behind it.
func sessionID(c echo.Context) string {
	id, _ := c.Get("session_id").(string)
	return id
}
