package middleware

import (
	"net/http"
	"time"

	"github.com/bothellselect/select-client/session"
	appcontext "github.com/bothellselect/select-client/utils/context"
	"github.com/labstack/echo/v4"
)

// SetClaimsFromJWTToken decodes the bearer token set by SetTokenInContext into
// the request context. Requests without a token pass through; malformed or
// expired tokens are rejected with 401. The signature is not verified here.
func SetClaimsFromJWTToken(now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, _ := c.Get(TokenKey).(string)
			if token == "" {
				return next(c)
			}

			claims, err := session.ValidateToken(token, now())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ClaimsKey, claims)
			c.SetRequest(c.Request().WithContext(appcontext.WithClaims(c.Request().Context(), claims)))
			return next(c)
		}
	}
}
