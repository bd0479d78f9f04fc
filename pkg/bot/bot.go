// Package bot implements the command protocol and the relay decision
// flow: parsing chat commands, driving prompt-then-reply interactions
// mutating the settings document, gating every mutation on the admin
// list, and dispatching monitored channel posts to destinations.
package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/tg-relay/pkg/config"
	"github.com/umputun/tg-relay/pkg/domain"
)

//go:generate moq -out mocks/transport.go -pkg mocks -skip-ensure -fmt goimports . Transport
//go:generate moq -out mocks/settings_store.go -pkg mocks -skip-ensure -fmt goimports . SettingsStore
//go:generate moq -out mocks/auditor.go -pkg mocks -skip-ensure -fmt goimports . Auditor

// Transport is the chat side of the bot: replies into conversations,
// deliveries to channels and channel resolution
type Transport interface {
	Reply(ctx context.Context, chatID int64, text string) error
	SendMessage(ctx context.Context, channelID, text string) error
	ForwardMessage(ctx context.Context, destChannelID, srcChannelID string, messageID int) error
	ChannelTitle(ctx context.Context, channelID string) (string, error)
}

// SettingsStore provides atomic get/put of the settings document
type SettingsStore interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Put(ctx context.Context, s *domain.Settings) error
}

// Auditor records user-visible actions
type Auditor interface {
	Record(ctx context.Context, event string)
}

// continuation consumes the next message of a conversation, exactly once
type continuation func(ctx context.Context, msg domain.Message)

// Bot routes inbound chat events. Each conversation is either idle or
// awaiting one reply for a pending prompt; a registered continuation is
// consumed by the next message whatever its content.
type Bot struct {
	transport   Transport
	store       SettingsStore
	audit       Auditor
	superAdmins []string
	relayMode   string

	commands map[string]func(ctx context.Context, msg domain.Message)

	mu      sync.Mutex
	pending map[int64]continuation
}

// Params holds bot dependencies and configuration
type Params struct {
	Transport   Transport
	Store       SettingsStore
	Audit       Auditor
	SuperAdmins []string
	RelayMode   string // config.RelayModeCopy or config.RelayModeForward
}

// New creates a bot. Super-admin handles are normalized once here and
// stay immutable for the process lifetime.
func New(p Params) *Bot {
	superAdmins := make([]string, 0, len(p.SuperAdmins))
	for _, h := range p.SuperAdmins {
		if n := normalizeHandle(h); n != "" {
			superAdmins = append(superAdmins, n)
		}
	}

	if p.RelayMode == "" {
		p.RelayMode = config.RelayModeCopy
	}

	b := &Bot{
		transport:   p.Transport,
		store:       p.Store,
		audit:       p.Audit,
		superAdmins: superAdmins,
		relayMode:   p.RelayMode,
		pending:     map[int64]continuation{},
	}

	b.commands = map[string]func(ctx context.Context, msg domain.Message){
		"/help":                b.cmdHelp,
		"/status":              b.cmdStatus,
		"/get_group_id":        b.cmdGetGroupID,
		"/set_monitor_channel": b.cmdSetMonitorChannel,
		"/set_keyword_initial": b.cmdSetKeywordInitial,
		"/set_keyword_contain": b.cmdSetKeywordContain,
		"/set_sending_channel": b.cmdSetSendingChannel,
		"/add_admin":           b.cmdAddAdmin,
		"/rm_admin":            b.cmdRmAdmin,
	}

	return b
}

// OnMessage handles a command or a reply to a pending prompt. A pending
// continuation wins over command parsing and is removed before it runs,
// so a failed validation still consumes it.
func (b *Bot) OnMessage(ctx context.Context, msg domain.Message) {
	b.mu.Lock()
	cont, ok := b.pending[msg.ChatID]
	if ok {
		delete(b.pending, msg.ChatID)
	}
	b.mu.Unlock()

	if ok {
		cont(ctx, msg)
		return
	}

	cmd := commandName(msg.Text)
	handler, ok := b.commands[cmd]
	if !ok {
		return // not a known command, nothing to do
	}

	lgr.Printf("[DEBUG] command %s from %s in chat %d", cmd, msg.From, msg.ChatID)
	handler(ctx, msg)
}

// awaitReply registers the continuation consuming the next message of
// the conversation, replacing any previous pending one
func (b *Bot) awaitReply(chatID int64, cont continuation) {
	b.mu.Lock()
	b.pending[chatID] = cont
	b.mu.Unlock()
}

// reply sends a response into the conversation, logging delivery failures
func (b *Bot) reply(ctx context.Context, msg domain.Message, text string) {
	if err := b.transport.Reply(ctx, msg.ChatID, text); err != nil {
		lgr.Printf("[WARN] failed to reply in chat %d: %v", msg.ChatID, err)
	}
}

// commandName extracts the command verb from message text, dropping the
// bot-name suffix telegram appends in group chats (/status@somebot)
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd
}
