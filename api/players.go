package api

import (
	"context"
	"net/url"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
)

func (c *Client) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	var player models.Player
	if err := c.get(ctx, "GetPlayer", enums.PlayerResource+"/"+url.PathEscape(id), nil, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (c *Client) SearchPlayers(ctx context.Context, query string) ([]models.Player, error) {
	var players []models.Player
	if err := c.getList(ctx, "SearchPlayers", enums.PlayerSearchResource, map[string]string{"q": query}, &players); err != nil {
		return nil, err
	}
	return players, nil
}
