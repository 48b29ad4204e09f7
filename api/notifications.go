package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
)

func (c *Client) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := c.getList(ctx, "GetNotifications", enums.NotificationResource, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) CreateNotification(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	var created models.Notification
	if err := c.send(ctx, "CreateNotification", http.MethodPost, enums.NotificationResource, n, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.send(ctx, "DeleteNotification", http.MethodDelete, enums.NotificationResource+"/"+url.PathEscape(id), nil, nil)
}
