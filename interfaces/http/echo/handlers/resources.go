package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bothellselect/select-client/address"
	"github.com/bothellselect/select-client/api"
	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
	otellogger "github.com/bothellselect/select-client/otel/logger"
	"github.com/bothellselect/select-client/registration"
	"github.com/bothellselect/select-client/storage"
	appcontext "github.com/bothellselect/select-client/utils/context"
	"github.com/labstack/echo/v4"
)

type parseAddressRequest struct {
	Address string `json:"address"`
}

type parseAddressResponse struct {
	Address   address.PostalAddress `json:"address"`
	Strategy  string                `json:"strategy"`
	Valid     bool                  `json:"valid"`
	Missing   []string              `json:"missing,omitempty"`
	Formatted string                `json:"formatted,omitempty"`
}

func (s *Server) parseAddress(c echo.Context) error {
	var req parseAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	parsed, strategy := address.NewNormalizer().ParseWith(req.Address)
	resp := parseAddressResponse{
		Address:  parsed,
		Strategy: strategy,
		Valid:    parsed.Valid(),
		Missing:  parsed.MissingFields(),
	}
	if resp.Valid {
		resp.Formatted = parsed.String()
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) register(c echo.Context) error {
	var in registration.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
	}

	resp, err := registration.Submit(c.Request().Context(), s.api, in)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) listNotifications(c echo.Context) error {
	sess := currentSession(c)
	ctx := c.Request().Context()

	notifications, err := sess.API.GetNotifications(ctx)
	if err != nil {
		return s.apiError(c, err)
	}
	dismissed, err := storage.DismissedNotifications(ctx, sess.Store)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.FilterDismissed(notifications, dismissed))
}

func (s *Server) dismissNotification(c echo.Context) error {
	sess := currentSession(c)
	if err := storage.DismissNotification(c.Request().Context(), sess.Store, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listPlayers returns the parent's roster, or search results for admins.
func (s *Server) listPlayers(c echo.Context) error {
	sess := currentSession(c)
	ctx := c.Request().Context()
	identity, _ := appcontext.GetIdentityFromContext(ctx)

	var (
		players []models.Player
		err     error
	)
	if identity.IsAdmin() {
		players, err = sess.API.SearchPlayers(ctx, strings.TrimSpace(c.QueryParam("q")))
	} else {
		players, err = sess.API.GetPlayersForParent(ctx, identity.ID)
	}
	if err != nil {
		return s.apiError(c, err)
	}
	if players == nil {
		players = []models.Player{}
	}
	return c.JSON(http.StatusOK, players)
}

func (s *Server) recentPlayers(c echo.Context) error {
	ids, err := storage.RecentlyViewed(c.Request().Context(), currentSession(c).Store, enums.RecentPlayers)
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, ids)
}

func (s *Server) viewPlayer(c echo.Context) error {
	sess := currentSession(c)
	ctx := c.Request().Context()

	player, err := sess.API.GetPlayer(ctx, c.Param("id"))
	if err != nil {
		return s.apiError(c, err)
	}
	if err := storage.RecordRecentlyViewed(ctx, sess.Store, enums.RecentPlayers, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, player)
}

// apiError maps library errors to dashboard responses.
func (s *Server) apiError(c echo.Context, err error) error {
	var (
		validationErr *registration.ValidationError
		backendErr    *api.Error
	)
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusUnprocessableEntity, messageResponse{Message: "invalid registration", Fields: validationErr.Fields})
	case errors.Is(err, api.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "not logged in"})
	case errors.As(err, &backendErr):
		status := backendErr.StatusCode
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		return c.JSON(status, messageResponse{Message: backendErr.Message})
	default:
		otellogger.ErrorCtx(c.Request().Context(), "backend call failed", err)
		return c.JSON(http.StatusBadGateway, messageResponse{Message: "backend unavailable"})
	}
}
