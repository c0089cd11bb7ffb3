// Package client implements the consumer side of the notification
// protocol: poll unread notifications on an interval, render each one
// once, and mark it read immediately so it is never delivered again.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultPollInterval = 30 * time.Second
	// Each poll cycle is bounded well under the interval so a hung
	// fetch never delays the next scheduled tick.
	DefaultFetchTimeout = 10 * time.Second
)

// Achievement mirrors the wire payload.
type Achievement struct {
	GoalType    string  `json:"goal_type"`
	Percentage  float64 `json:"percentage"`
	ActualValue float64 `json:"actual_value"`
	GoalValue   float64 `json:"goal_value"`
	Achieved    bool    `json:"achieved"`
}

type Notification struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
	Achievement Achievement `json:"achievement"`
	Read        bool        `json:"read"`
	CreatedAt   time.Time   `json:"created_at"`
}

// PresentationTier picks how loudly a notification is shown. The
// boundaries are the same 80/90/100 cutoffs the server classifies with.
type PresentationTier int

const (
	TierPlain       PresentationTier = iota // 80–89%
	TierUrgent                              // 90–99%
	TierCelebratory                         // 100% and up
)

func TierFor(percentage float64) PresentationTier {
	switch {
	case percentage >= 100:
		return TierCelebratory
	case percentage >= 90:
		return TierUrgent
	default:
		return TierPlain
	}
}

// Renderer displays one notification. Implementations must not retain
// the notification past the call; it is marked read right after.
type Renderer interface {
	Render(n Notification, tier PresentationTier)
}

// Client talks to the notifications API with a bearer token.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: DefaultFetchTimeout},
	}
}

type listResponse struct {
	Notifications []Notification `json:"notifications"`
	Count         int            `json:"count"`
}

func (c *Client) ListUnread(ctx context.Context) ([]Notification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/user/notifications?unread_only=true", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list notifications: unexpected status %d", resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Notifications, nil
}

func (c *Client) MarkRead(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/user/notifications/"+id+"/read", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mark read %s: unexpected status %d", id, resp.StatusCode)
	}
	return nil
}

// Poller drives the fetch → render → mark-read loop.
type Poller struct {
	Client       *Client
	Renderer     Renderer
	Interval     time.Duration
	FetchTimeout time.Duration
}

func NewPoller(c *Client, r Renderer) *Poller {
	return &Poller{
		Client:       c,
		Renderer:     r,
		Interval:     DefaultPollInterval,
		FetchTimeout: DefaultFetchTimeout,
	}
}

// Run polls until ctx is cancelled. The first pass happens immediately;
// after cancellation no further fetches are issued. Transient failures
// are logged and retried on the next tick, never surfaced.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	p.PollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce performs one poll cycle: every notification fetched is
// rendered exactly once and marked read before the next one is handled.
// A failed mark-read skips only that item.
func (p *Poller) PollOnce(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, p.FetchTimeout)
	defer cancel()

	notifications, err := p.Client.ListUnread(cctx)
	if err != nil {
		logrus.WithError(err).Warn("notification poll failed")
		return
	}

	for _, n := range notifications {
		p.Renderer.Render(n, TierFor(n.Achievement.Percentage))
		if err := p.Client.MarkRead(cctx, n.ID); err != nil {
			logrus.WithError(err).WithField("notification_id", n.ID).Warn("mark read failed")
			continue
		}
	}
}
