// Package telegram is a thin Telegram Bot API client: a long-polling
// update listener plus the send/forward/resolve calls the bot needs.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/tg-relay/pkg/domain"
)

// Handler consumes inbound chat events from the listener
type Handler interface {
	OnMessage(ctx context.Context, msg domain.Message)
	OnChannelPost(ctx context.Context, post domain.Message)
}

// Client talks to the Telegram Bot API over HTTP
type Client struct {
	token       string
	apiURL      string
	pollTimeout time.Duration
	client      *http.Client
	pollClient  *http.Client // longer timeout, holds the long-poll open
}

// Params holds client configuration
type Params struct {
	Token       string
	APIURL      string // without the /bot<token> suffix
	Timeout     time.Duration
	PollTimeout time.Duration
}

// New creates a Telegram client
func New(p Params) *Client {
	if p.APIURL == "" {
		p.APIURL = "https://api.telegram.org"
	}
	if p.Timeout == 0 {
		p.Timeout = 30 * time.Second
	}
	if p.PollTimeout == 0 {
		p.PollTimeout = 50 * time.Second
	}
	return &Client{
		token:       p.Token,
		apiURL:      p.APIURL,
		pollTimeout: p.PollTimeout,
		client:      &http.Client{Timeout: p.Timeout},
		pollClient:  &http.Client{Timeout: p.PollTimeout + p.Timeout},
	}
}

// wire types, only the fields the relay cares about

type update struct {
	UpdateID    int64    `json:"update_id"`
	Message     *message `json:"message"`
	ChannelPost *message `json:"channel_post"`
}

type message struct {
	MessageID int    `json:"message_id"`
	From      *user  `json:"from"`
	Chat      chat   `json:"chat"`
	Text      string `json:"text"`
}

type user struct {
	Username string `json:"username"`
}

type chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
}

// call posts a JSON payload to an API method and decodes the result into out
func (c *Client) call(ctx context.Context, client *http.Client, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%s failed: %s (code %d)", method, apiResp.Description, apiResp.ErrorCode)
	}

	if out != nil {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("parse %s result: %w", method, err)
		}
	}
	return nil
}

// Self returns the bot's own username, validating the token
func (c *Client) Self(ctx context.Context) (string, error) {
	var me user
	if err := c.call(ctx, c.client, "getMe", struct{}{}, &me); err != nil {
		return "", err
	}
	return me.Username, nil
}

// Listen long-polls for updates until the context is canceled, feeding
// events to the handler. Transient poll failures are retried with
// backoff inside the loop, the listener itself never gives up.
func (c *Client) Listen(ctx context.Context, h Handler) error {
	lgr.Printf("[INFO] listening for updates, poll timeout %v", c.pollTimeout)

	var offset int64
	for {
		if ctx.Err() != nil {
			lgr.Printf("[INFO] listener stopped")
			return nil
		}

		updates, err := c.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				lgr.Printf("[INFO] listener stopped")
				return nil
			}
			lgr.Printf("[ERROR] failed to get updates: %v", err)
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			c.dispatch(ctx, u, h)
		}
	}
}

// getUpdates polls once with retries on transient failures
func (c *Client) getUpdates(ctx context.Context, offset int64) ([]update, error) {
	payload := struct {
		Offset         int64    `json:"offset"`
		Timeout        int      `json:"timeout"`
		AllowedUpdates []string `json:"allowed_updates"`
	}{
		Offset:         offset,
		Timeout:        int(c.pollTimeout.Seconds()),
		AllowedUpdates: []string{"message", "channel_post"},
	}

	var updates []update
	retrier := repeater.NewBackoff(5, time.Second, repeater.WithMaxDelay(30*time.Second))
	err := retrier.Do(ctx, func() error {
		updates = updates[:0]
		return c.call(ctx, c.pollClient, "getUpdates", payload, &updates)
	})
	return updates, err
}

func (c *Client) dispatch(ctx context.Context, u update, h Handler) {
	switch {
	case u.ChannelPost != nil:
		h.OnChannelPost(ctx, toDomain(u.ChannelPost))
	case u.Message != nil:
		h.OnMessage(ctx, toDomain(u.Message))
	}
}

func toDomain(m *message) domain.Message {
	res := domain.Message{
		MessageID: m.MessageID,
		ChatID:    m.Chat.ID,
		Text:      m.Text,
	}
	if m.From != nil {
		res.From = m.From.Username
	}
	return res
}

// Reply sends a message into a conversation
func (c *Client) Reply(ctx context.Context, chatID int64, text string) error {
	payload := struct {
		ChatID int64  `json:"chat_id"`
		Text   string `json:"text"`
	}{ChatID: chatID, Text: text}
	return c.call(ctx, c.client, "sendMessage", payload, nil)
}

// SendMessage sends text to a channel addressed by its string identifier
func (c *Client) SendMessage(ctx context.Context, channelID, text string) error {
	payload := struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}{ChatID: channelID, Text: text}
	return c.call(ctx, c.client, "sendMessage", payload, nil)
}

// ForwardMessage natively forwards a message between channels
func (c *Client) ForwardMessage(ctx context.Context, destChannelID, srcChannelID string, messageID int) error {
	payload := struct {
		ChatID     string `json:"chat_id"`
		FromChatID string `json:"from_chat_id"`
		MessageID  int    `json:"message_id"`
	}{ChatID: destChannelID, FromChatID: srcChannelID, MessageID: messageID}
	return c.call(ctx, c.client, "forwardMessage", payload, nil)
}

// ChannelTitle resolves a channel to its display title, an error means
// the bot can't see the channel
func (c *Client) ChannelTitle(ctx context.Context, channelID string) (string, error) {
	payload := struct {
		ChatID string `json:"chat_id"`
	}{ChatID: channelID}

	var res chat
	if err := c.call(ctx, c.client, "getChat", payload, &res); err != nil {
		return "", err
	}
	if res.Title == "" {
		return "", errors.New("chat has no title")
	}
	return res.Title, nil
}
