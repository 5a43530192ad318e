package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/caeli-works/caeli-api-types/notifications"
)

func (c *client) FindNotifications(ctx context.Context, filter NotificationFilter) ([]notifications.Notification, error) {
	q := url.Values{}
	if filter.UnreadOnly {
		q.Set("unread", "true")
	}
	if filter.Channel != "" {
		q.Set("channel", filter.Channel)
	}

	resp, err := c.dedupGet(ctx, c.apipath("v1", "notifications"), q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := make([]notifications.Notification, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("[BUG] client is not compatible with the server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return found, nil
}

func (c *client) GetUnreadCount(ctx context.Context) (notifications.UnreadCount, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "notifications", "unread-count"), nil)
	if err != nil {
		return notifications.UnreadCount{}, err
	}
	defer resp.Body.Close()

	var count notifications.UnreadCount
	if err := unmarshalJsonResponse(
		resp, &count,
		MessageFor{
			Status4xx: fmt.Sprintf("[BUG] client is not compatible with the server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return notifications.UnreadCount{}, err
	}
	return count, nil
}

func (c *client) MarkNotificationRead(ctx context.Context, notificationId string) (notifications.Notification, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.apipath("v1", "notifications", notificationId, "read"), nil,
	)
	if err != nil {
		return notifications.Notification{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return notifications.Notification{}, err
	}
	defer resp.Body.Close()

	var n notifications.Notification
	if err := unmarshalJsonResponse(
		resp, &n,
		MessageFor{
			Status4xx: fmt.Sprintf("notification:%v is not found", notificationId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return notifications.Notification{}, err
	}
	return n, nil
}

func (c *client) FindNotificationRules(ctx context.Context) ([]notifications.Rule, error) {
	resp, err := c.dedupGet(ctx, c.apipath("v1", "notification-rules"), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rules := make([]notifications.Rule, 0, 5)
	if err := unmarshalJsonResponse(
		resp, &rules,
		MessageFor{
			Status4xx: fmt.Sprintf("[BUG] client is not compatible with the server (status code = %d)", resp.StatusCode),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return nil, err
	}
	return rules, nil
}

func (c *client) RegisterNotificationRule(ctx context.Context, spec notifications.RuleSpec) (notifications.Rule, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return notifications.Rule{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("v1", "notification-rules"), bytes.NewReader(body),
	)
	if err != nil {
		return notifications.Rule{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return notifications.Rule{}, err
	}
	defer resp.Body.Close()

	var rule notifications.Rule
	if err := unmarshalJsonResponse(
		resp, &rule,
		MessageFor{
			Status4xx: "notification rule is rejected by server",
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return notifications.Rule{}, err
	}
	return rule, nil
}

func (c *client) UpdateNotificationRule(ctx context.Context, ruleId string, spec notifications.RuleSpec) (notifications.Rule, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return notifications.Rule{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.apipath("v1", "notification-rules", ruleId), bytes.NewReader(body),
	)
	if err != nil {
		return notifications.Rule{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return notifications.Rule{}, err
	}
	defer resp.Body.Close()

	var rule notifications.Rule
	if err := unmarshalJsonResponse(
		resp, &rule,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot update notification rule:%v", ruleId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	); err != nil {
		return notifications.Rule{}, err
	}
	return rule, nil
}

func (c *client) DeleteNotificationRule(ctx context.Context, ruleId string) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.apipath("v1", "notification-rules", ruleId), nil,
	)
	if err != nil {
		return err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return unmarshalResponseDiscardingPayload(
		resp,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot delete notification rule:%v", ruleId),
			Status5xx: fmt.Sprintf("server error (status code = %d)", resp.StatusCode),
		},
	)
}
