package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/bothellselect/select-client/interfaces/http/echo/middleware"
	"github.com/bothellselect/select-client/session"
	appcontext "github.com/bothellselect/select-client/utils/context"
	"github.com/labstack/echo/v4"
)

const sessionContextKey = "browserSession"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func currentSession(c echo.Context) *Session {
	s, _ := c.Get(sessionContextKey).(*Session)
	return s
}

// withSession resolves the browser session from the Session cookie, or builds an
// ephemeral one from a bearer token. A bearer token wins over a cookie session
// that is no longer logged in.
func (s *Server) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		token, _ := c.Get(middleware.TokenKey).(string)

		if id, _ := c.Get(middleware.RequestSessionKey).(string); id != "" {
			if sess, ok := s.registry.Get(ctx, id); ok && (token == "" || authenticated(ctx, sess)) {
				c.Set(sessionContextKey, sess)
				return next(c)
			}
		}

		if token != "" {
			sess, err := s.registry.Ephemeral(ctx, token)
			if err != nil {
				return err
			}
			c.Set(sessionContextKey, sess)
			return next(c)
		}

		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "not logged in"})
	}
}

func authenticated(ctx context.Context, sess *Session) bool {
	_ = sess.Manager.CheckSession(ctx)
	return sess.Manager.State().IsAuthenticated
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := currentSession(c)
		ctx := c.Request().Context()

		if err := sess.Manager.CheckSession(ctx); err != nil {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "session check failed"})
		}
		state := sess.Manager.State()
		if !state.IsAuthenticated {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "not logged in"})
		}

		c.SetRequest(c.Request().WithContext(appcontext.WithIdentity(ctx, state.Identity)))
		return next(c)
	}
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	ctx := c.Request().Context()
	var sess *Session
	if id, _ := c.Get(middleware.RequestSessionKey).(string); id != "" {
		sess, _ = s.registry.Get(ctx, id)
	}
	if sess == nil {
		sess = s.registry.Create(ctx)
		c.SetCookie(&http.Cookie{
			Name:     middleware.SessionHeader,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.cfg.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if err := sess.Manager.Login(ctx, req.Email, req.Password); err != nil {
		var loginErr *session.LoginError
		if errors.As(err, &loginErr) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: loginErr.Message})
		}
		return err
	}
	return c.JSON(http.StatusOK, sess.Manager.State())
}

func (s *Server) logout(c echo.Context) error {
	sess := currentSession(c)
	if err := sess.Manager.Logout(c.Request().Context()); err != nil {
		return err
	}
	if sess.ID != "" {
		s.registry.Remove(c.Request().Context(), sess.ID)
		c.SetCookie(&http.Cookie{Name: middleware.SessionHeader, Value: "", Path: "/", MaxAge: -1})
	}
	return c.JSON(http.StatusOK, sess.Manager.State())
}

func (s *Server) getSession(c echo.Context) error {
	return c.JSON(http.StatusOK, currentSession(c).Manager.State())
}

func (s *Server) refreshSession(c echo.Context) error {
	sess := currentSession(c)
	if err := sess.Manager.RefreshSession(c.Request().Context()); err != nil {
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "session check failed"})
	}
	state := sess.Manager.State()
	if !state.IsAuthenticated {
		return c.JSON(http.StatusUnauthorized, state)
	}
	return c.JSON(http.StatusOK, state)
}
