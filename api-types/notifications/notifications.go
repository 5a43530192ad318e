package notifications

import (
	"encoding/json"
	"fmt"

	"github.com/caeli-works/caeli-api-types/misc/rfctime"
)

// Channel a notification is delivered through.
type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelWebhook Channel = "webhook"
	ChannelInApp   Channel = "in-app"
)

func (c *Channel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Channel(s) {
	case ChannelEmail, ChannelWebhook, ChannelInApp:
		*c = Channel(s)
		return nil
	}
	return fmt.Errorf("unknown notification channel: %s", s)
}

// Delivery state of a notification.
type Delivery string

const (
	DeliveryPending Delivery = "pending"
	DeliverySent    Delivery = "sent"
	DeliveryFailed  Delivery = "failed"
)

type Notification struct {
	Id        string          `json:"id"`
	RuleId    string          `json:"ruleId,omitempty"`
	Subject   string          `json:"subject"`
	Body      string          `json:"body"`
	Channel   Channel         `json:"channel"`
	Delivery  Delivery        `json:"delivery"`
	Read      bool            `json:"read"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func (n Notification) Equal(o Notification) bool {
	return n.Id == o.Id &&
		n.RuleId == o.RuleId &&
		n.Subject == o.Subject &&
		n.Body == o.Body &&
		n.Channel == o.Channel &&
		n.Delivery == o.Delivery &&
		n.Read == o.Read &&
		n.CreatedAt.Equal(o.CreatedAt)
}

// Rule triggers notifications on backend events.
type Rule struct {
	Id      string  `json:"id"`
	Name    string  `json:"name"`
	Event   string  `json:"event"`
	Channel Channel `json:"channel"`
	// Target is channel dependent: an address, a webhook URL, or empty for in-app.
	Target  string `json:"target,omitempty"`
	Enabled bool   `json:"enabled"`
}

func (r Rule) Equal(o Rule) bool {
	return r.Id == o.Id &&
		r.Name == o.Name &&
		r.Event == o.Event &&
		r.Channel == o.Channel &&
		r.Target == o.Target &&
		r.Enabled == o.Enabled
}

// RuleSpec creates or updates a rule.
type RuleSpec struct {
	Name    string  `json:"name"`
	Event   string  `json:"event"`
	Channel Channel `json:"channel"`
	Target  string  `json:"target,omitempty"`
	Enabled bool    `json:"enabled"`
}

type UnreadCount struct {
	Count int `json:"count"`
}
