package middleware

import (
	"strings"

	appcontext "github.com/bothellselect/select-client/utils/context"
	"github.com/labstack/echo/v4"
)

// SetTokenInContext reads the bearer token from the Authorization header, falling
// back to the Authorization cookie, and stores it without the "Bearer " prefix.
func SetTokenInContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(Authorization)

			if token == "" {
				cookie, err := c.Cookie(Authorization)
				if err == nil {
					token = cookie.Value
				}
			}

			token = strings.TrimSpace(token)
			if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
				token = strings.TrimSpace(token[7:])
			}

			c.Set(TokenKey, token)
			if token != "" {
				c.SetRequest(c.Request().WithContext(appcontext.WithToken(c.Request().Context(), token)))
			}
			return next(c)
		}
	}
}
