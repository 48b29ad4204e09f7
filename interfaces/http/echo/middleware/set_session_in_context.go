package middleware

import (
	"errors"
	"net/http"

	"github.com/bothellselect/select-client/utils/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SetSessionInContext stores the browser session id from the Session header or
// cookie under RequestSessionKey.
func SetSessionInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := c.Request().Header.Get(SessionHeader)

			if session == "" {
				cookie, err := c.Cookie(SessionHeader)
				if err != nil {
					if !errors.Is(err, http.ErrNoCookie) {
						logger.LogWarn("error retrieving session cookie", zap.Error(err))
					}
					return next(c)
				}
				session = cookie.Value
			}

			c.Set(RequestSessionKey, session)
			return next(c)
		}
	}
}
