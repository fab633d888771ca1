package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ListActivityRequest is the request for list-activity.
type ListActivityRequest struct {
	UserID string `json:"user_id"`
}

// ListActivityResponse is the reply of list-activity.
type ListActivityResponse struct {
	Activity []Activity `json:"activity"`
}

// NotificationPort reads a user's activity feed.
type NotificationPort interface {
	ListActivity(ctx context.Context, userID string) ([]Activity, error)
}

// NotificationAdapter implements NotificationPort using the service container.
type NotificationAdapter struct {
	container mono.ServiceContainer
}

var _ NotificationPort = (*NotificationAdapter)(nil)

// NewNotificationAdapter creates a new NotificationAdapter.
func NewNotificationAdapter(container mono.ServiceContainer) *NotificationAdapter {
	return &NotificationAdapter{container: container}
}

// ListActivity returns the user's recent activity, oldest first.
func (a *NotificationAdapter) ListActivity(ctx context.Context, userID string) ([]Activity, error) {
	req := ListActivityRequest{UserID: userID}
	var resp ListActivityResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-activity",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-activity request failed: %w", err)
	}

	if resp.Activity == nil {
		resp.Activity = []Activity{}
	}
	return resp.Activity, nil
}
