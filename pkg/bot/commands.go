package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/tg-relay/pkg/domain"
)

// clearSentinel empties a keyword list instead of replacing it
const clearSentinel = "clear"

const helpText = `commands:
/help - show this help
/status - show current configuration
/get_group_id - show this chat's id, no permission needed
/set_monitor_channel - set the channel to monitor
/set_keyword_initial - set prefix keywords, up to 5
/set_keyword_contain - set substring keywords, up to 5
/set_sending_channel - set forwarding destinations, up to 3
/add_admin - add an admin
/rm_admin - remove an admin

setters ask for the value in a follow-up message`

func (b *Bot) cmdHelp(ctx context.Context, msg domain.Message) {
	b.reply(ctx, msg, helpText)
	b.audit.Record(ctx, fmt.Sprintf("user %s executed /help", displayHandle(msg.From)))
}

func (b *Bot) cmdGetGroupID(ctx context.Context, msg domain.Message) {
	b.reply(ctx, msg, fmt.Sprintf("this chat's id is: %d", msg.ChatID))
	b.audit.Record(ctx, fmt.Sprintf("user %s got chat id %d", displayHandle(msg.From), msg.ChatID))
}

func (b *Bot) cmdStatus(ctx context.Context, msg domain.Message) {
	if !b.requireAdmin(ctx, msg, "/status") {
		return
	}

	s, err := b.store.Get(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to load settings: %v", err)
		b.reply(ctx, msg, "failed to load settings, try again later")
		return
	}

	monitor := "not set"
	if s.MonitorChannel != "" {
		monitor = b.channelLabel(ctx, s.MonitorChannel)
	}

	initial, contain := "not set", "not set"
	if len(s.KeywordInitial) > 0 {
		initial = strings.Join(s.KeywordInitial, ", ")
	}
	if len(s.KeywordContain) > 0 {
		contain = strings.Join(s.KeywordContain, ", ")
	}

	sending := "not set"
	if len(s.SendingChannels) > 0 {
		lines := make([]string, len(s.SendingChannels))
		for i, id := range s.SendingChannels {
			lines[i] = fmt.Sprintf("[%d] %s", i+1, b.channelLabel(ctx, id))
		}
		sending = strings.Join(lines, "\n")
	}

	status := fmt.Sprintf("monitored channel:\n%s\n\nkeywords:\n> prefix: %s\n> contain: %s\n\nforwarding to:\n%s",
		monitor, initial, contain, sending)
	b.reply(ctx, msg, status)
	b.audit.Record(ctx, fmt.Sprintf("user %s checked status: monitor=%s, prefix=[%s], contain=[%s], sending=[%s]",
		displayHandle(msg.From), monitor, initial, contain, strings.ReplaceAll(sending, "\n", "; ")))
}

// channelLabel resolves a channel to "title (id)", degrading to a
// placeholder when the lookup fails so status never breaks on one bad id
func (b *Bot) channelLabel(ctx context.Context, channelID string) string {
	title, err := b.transport.ChannelTitle(ctx, channelID)
	if err != nil {
		return fmt.Sprintf("unknown channel (%s)", channelID)
	}
	return fmt.Sprintf("%s (%s)", title, channelID)
}

func (b *Bot) cmdSetMonitorChannel(ctx context.Context, msg domain.Message) {
	if !b.requireAdmin(ctx, msg, "/set_monitor_channel") {
		return
	}
	b.reply(ctx, msg, "send the channel id to monitor, e.g. -100123456789")
	b.awaitReply(msg.ChatID, b.processMonitorChannel)
}

func (b *Bot) processMonitorChannel(ctx context.Context, msg domain.Message) {
	channelID := strings.TrimSpace(msg.Text)
	if channelID == "" {
		b.reply(ctx, msg, "channel id can't be empty, run /set_monitor_channel to try again")
		return
	}

	// the channel must be reachable before it is accepted
	title, err := b.transport.ChannelTitle(ctx, channelID)
	if err != nil {
		lgr.Printf("[WARN] can't resolve channel %s: %v", channelID, err)
		b.reply(ctx, msg, fmt.Sprintf("can't access channel %s, make sure the bot is added to it", channelID))
		return
	}

	s, err := b.store.Get(ctx)
	if err != nil {
		b.replyLoadFailed(ctx, msg, err)
		return
	}

	old := s.MonitorChannel
	s.MonitorChannel = channelID
	if err := b.store.Put(ctx, s); err != nil {
		b.replySaveFailed(ctx, msg, err)
		return
	}

	b.reply(ctx, msg, fmt.Sprintf("monitoring channel set to: %s (%s)", title, channelID))
	b.audit.Record(ctx, fmt.Sprintf("user %s set monitor channel: %q -> %q",
		displayHandle(msg.From), old, channelID))
}

func (b *Bot) cmdSetKeywordInitial(ctx context.Context, msg domain.Message) {
	if !b.requireAdmin(ctx, msg, "/set_keyword_initial") {
		return
	}
	b.reply(ctx, msg, fmt.Sprintf("send up to %d prefix keywords, comma-separated, or %q to remove all",
		domain.MaxKeywords, clearSentinel))
	b.awaitReply(msg.ChatID, func(ctx context.Context, reply domain.Message) {
		b.processKeywords(ctx, reply, "prefix", func(s *domain.Settings, keywords []string) {
			s.KeywordInitial = keywords
		})
	})
}

func (b *Bot) cmdSetKeywordContain(ctx context.Context, msg domain.Message) {
	if !b.requireAdmin(ctx, msg, "/set_keyword_contain") {
		return
	}
	b.reply(ctx, msg, fmt.Sprintf("send up to %d substring keywords, comma-separated, or %q to remove all",
		domain.MaxKeywords, clearSentinel))
	b.awaitReply(msg.ChatID, func(ctx context.Context, reply domain.Message) {
		b.processKeywords(ctx, reply, "substring", func(s *domain.Settings, keywords []string) {
			s.KeywordContain = keywords
		})
	})
}

// processKeywords is the shared continuation for both keyword lists, the
// set callback picks the field. Replaces the list wholesale, never appends.
func (b *Bot) processKeywords(ctx context.Context, msg domain.Message, kind string, set func(*domain.Settings, []string)) {
	keywords := []string{}
	if !strings.EqualFold(strings.TrimSpace(msg.Text), clearSentinel) {
		keywords = splitList(msg.Text)
		if len(keywords) == 0 {
			b.reply(ctx, msg, "keyword list can't be empty, send comma-separated keywords or \"clear\"")
			return
		}
		if len(keywords) > domain.MaxKeywords {
			b.reply(ctx, msg, fmt.Sprintf("too many keywords: %d, max is %d - nothing changed",
				len(keywords), domain.MaxKeywords))
			return
		}
	}

	s, err := b.store.Get(ctx)
	if err != nil {
		b.replyLoadFailed(ctx, msg, err)
		return
	}

	set(s, keywords)
	if err := b.store.Put(ctx, s); err != nil {
		b.replySaveFailed(ctx, msg, err)
		return
	}

	if len(keywords) == 0 {
		b.reply(ctx, msg, fmt.Sprintf("%s keywords removed", kind))
	} else {
		b.reply(ctx, msg, fmt.Sprintf("%s keywords set to: %s", kind, strings.Join(keywords, ", ")))
	}
	b.audit.Record(ctx, fmt.Sprintf("user %s set %s keywords to %v", displayHandle(msg.From), kind, keywords))
}

func (b *Bot) cmdSetSendingChannel(ctx context.Context, msg domain.Message) {
	if !b.requireAdmin(ctx, msg, "/set_sending_channel") {
		return
	}
	b.reply(ctx, msg, fmt.Sprintf("send up to %d destination channel ids, comma-separated, e.g. -100111,-100222",
		domain.MaxSendingChannels))
	b.awaitReply(msg.ChatID, b.processSendingChannels)
}

func (b *Bot) processSendingChannels(ctx context.Context, msg domain.Message) {
	channels := splitList(msg.Text)
	if len(channels) == 0 {
		b.reply(ctx, msg, "channel list can't be empty, run /set_sending_channel to try again")
		return
	}
	if len(channels) > domain.MaxSendingChannels {
		b.reply(ctx, msg, fmt.Sprintf("too many channels: %d, max is %d - nothing changed",
			len(channels), domain.MaxSendingChannels))
		return
	}

	// every id must resolve or the whole batch is rejected
	lines := make([]string, len(channels))
	for i, id := range channels {
		title, err := b.transport.ChannelTitle(ctx, id)
		if err != nil {
			lgr.Printf("[WARN] can't resolve channel %s: %v", id, err)
			b.reply(ctx, msg, fmt.Sprintf("can't access channel %s, nothing changed", id))
			return
		}
		lines[i] = fmt.Sprintf("[%d] %s (%s)", i+1, title, id)
	}

	s, err := b.store.Get(ctx)
	if err != nil {
		b.replyLoadFailed(ctx, msg, err)
		return
	}

	s.SendingChannels = channels
	if err := b.store.Put(ctx, s); err != nil {
		b.replySaveFailed(ctx, msg, err)
		return
	}

	b.reply(ctx, msg, "forwarding destinations set to:\n"+strings.Join(lines, "\n"))
	b.audit.Record(ctx, fmt.Sprintf("user %s set sending channels to %v", displayHandle(msg.From), channels))
}

func (b *Bot) cmdAddAdmin(ctx context.Context, msg domain.Message) {
	if !b.requireAdmin(ctx, msg, "/add_admin") {
		return
	}
	b.reply(ctx, msg, "send the handle to add, e.g. @username")
	b.awaitReply(msg.ChatID, b.processAddAdmin)
}

func (b *Bot) processAddAdmin(ctx context.Context, msg domain.Message) {
	handle := normalizeHandle(msg.Text)
	if handle == "" {
		b.reply(ctx, msg, "send a handle like @username, run /add_admin to try again")
		return
	}

	s, err := b.store.Get(ctx)
	if err != nil {
		b.replyLoadFailed(ctx, msg, err)
		return
	}

	for _, admin := range s.Admins {
		if normalizeHandle(admin) == handle {
			b.reply(ctx, msg, fmt.Sprintf("%s is already an admin", handle))
			return
		}
	}

	s.Admins = append(s.Admins, handle)
	if err := b.store.Put(ctx, s); err != nil {
		b.replySaveFailed(ctx, msg, err)
		return
	}

	b.reply(ctx, msg, fmt.Sprintf("added admin %s", handle))
	b.audit.Record(ctx, fmt.Sprintf("user %s added admin %s, admins now %v", displayHandle(msg.From), handle, s.Admins))
}

func (b *Bot) cmdRmAdmin(ctx context.Context, msg domain.Message) {
	if !b.requireAdmin(ctx, msg, "/rm_admin") {
		return
	}

	s, err := b.store.Get(ctx)
	if err != nil {
		b.replyLoadFailed(ctx, msg, err)
		return
	}

	if len(s.Admins) == 0 {
		b.reply(ctx, msg, "no admins to remove")
		return
	}

	var sb strings.Builder
	sb.WriteString("current admins:\n")
	for i, admin := range s.Admins {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, admin)
	}
	sb.WriteString("reply with the number to remove")

	b.reply(ctx, msg, sb.String())
	b.audit.Record(ctx, fmt.Sprintf("user %s requested admin removal, admins: %v", displayHandle(msg.From), s.Admins))
	b.awaitReply(msg.ChatID, b.processRmAdmin)
}

func (b *Bot) processRmAdmin(ctx context.Context, msg domain.Message) {
	index, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil {
		b.reply(ctx, msg, "send a valid number, e.g. 1")
		return
	}

	s, err := b.store.Get(ctx)
	if err != nil {
		b.replyLoadFailed(ctx, msg, err)
		return
	}

	if index < 1 || index > len(s.Admins) {
		b.reply(ctx, msg, "invalid number, check the list and run /rm_admin again")
		return
	}

	removed := s.Admins[index-1]
	s.Admins = append(s.Admins[:index-1], s.Admins[index:]...)
	if err := b.store.Put(ctx, s); err != nil {
		b.replySaveFailed(ctx, msg, err)
		return
	}

	b.reply(ctx, msg, fmt.Sprintf("removed admin %s", removed))
	b.audit.Record(ctx, fmt.Sprintf("user %s removed admin %s, admins now %v", displayHandle(msg.From), removed, s.Admins))
}

func (b *Bot) replyLoadFailed(ctx context.Context, msg domain.Message, err error) {
	lgr.Printf("[ERROR] failed to load settings: %v", err)
	b.reply(ctx, msg, "failed to load settings, nothing changed")
}

func (b *Bot) replySaveFailed(ctx context.Context, msg domain.Message, err error) {
	lgr.Printf("[ERROR] failed to save settings: %v", err)
	b.reply(ctx, msg, "failed to save settings, nothing changed")
}

// splitList parses comma-separated user input, trimming whitespace per
// item and dropping empties
func splitList(text string) []string {
	parts := strings.Split(text, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if item := strings.TrimSpace(p); item != "" {
			res = append(res, item)
		}
	}
	return res
}
