package models

import "time"

type Notification struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type,omitempty"`
	TargetType string    `json:"targetType,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FilterDismissed drops notifications whose ids appear in dismissed, keeping order.
func FilterDismissed(notifications []Notification, dismissed []string) []Notification {
	if len(dismissed) == 0 {
		return notifications
	}
	skip := make(map[string]struct{}, len(dismissed))
	for _, id := range dismissed {
		skip[id] = struct{}{}
	}
	visible := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		if _, ok := skip[n.ID]; ok {
			continue
		}
		visible = append(visible, n)
	}
	return visible
}
