package web

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const sessionCookieName = "session_id"

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:  sessionCookieName,
		Value: token,
		Path:  "/",
	})
}

// clearSessionCookie expires the cookie immediately.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:    sessionCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
}
