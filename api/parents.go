package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
	otellogger "github.com/bothellselect/select-client/otel/logger"
	"go.uber.org/zap"
)

func parentPath(id string, sub ...string) string {
	p := enums.ParentResource + "/" + url.PathEscape(id)
	for _, s := range sub {
		p += "/" + s
	}
	return p
}

func (c *Client) GetParent(ctx context.Context, id string) (*models.Parent, error) {
	var parent models.Parent
	if err := c.get(ctx, "GetParent", parentPath(id), nil, &parent); err != nil {
		return nil, err
	}
	return &parent, nil
}

func (c *Client) UpdateParent(ctx context.Context, parent *models.Parent) (*models.Parent, error) {
	var updated models.Parent
	if err := c.send(ctx, "UpdateParent", http.MethodPut, parentPath(parent.ID), parent, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) GetGuardians(ctx context.Context, parentID string) ([]models.Guardian, error) {
	var guardians []models.Guardian
	if err := c.getList(ctx, "GetGuardians", parentPath(parentID, "guardians"), nil, &guardians); err != nil {
		return nil, err
	}
	return guardians, nil
}

// GetPlayersForParent lists a parent's players. When the nested route fails it
// retries the flat /players?parentId= route; the first error is only logged.
func (c *Client) GetPlayersForParent(ctx context.Context, parentID string) ([]models.Player, error) {
	var players []models.Player
	err := c.getList(ctx, "GetPlayersForParent", parentPath(parentID, "players"), nil, &players)
	if err == nil {
		return players, nil
	}

	otellogger.WarnCtx(ctx, "nested players route failed, retrying flat route",
		zap.String("parent_id", parentID), zap.Error(err))

	players = nil
	if err := c.getList(ctx, "GetPlayersByParentID", enums.PlayerResource, map[string]string{"parentId": parentID}, &players); err != nil {
		return nil, err
	}
	return players, nil
}
