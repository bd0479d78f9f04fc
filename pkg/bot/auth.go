package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/umputun/tg-relay/pkg/domain"
)

// isAdmin reports whether the handle may invoke mutating commands, i.e.
// appears in the document's admin list or in the immutable super-admin
// set. Comparison is on normalized handles, an empty handle never passes.
func (b *Bot) isAdmin(handle string, s *domain.Settings) bool {
	normalized := normalizeHandle(handle)
	if normalized == "" {
		return false
	}

	for _, admin := range s.Admins {
		if normalizeHandle(admin) == normalized {
			return true
		}
	}
	for _, admin := range b.superAdmins {
		if admin == normalized {
			return true
		}
	}
	return false
}

// requireAdmin is the authorization gate in front of every mutating
// command. On failure it replies with a denial naming the actor, records
// the attempt and returns false.
func (b *Bot) requireAdmin(ctx context.Context, msg domain.Message, command string) bool {
	s, err := b.store.Get(ctx)
	if err != nil {
		b.reply(ctx, msg, "can't check permissions right now, try again later")
		return false
	}

	if b.isAdmin(msg.From, s) {
		return true
	}

	b.reply(ctx, msg, fmt.Sprintf("sorry %s, you don't have permission for this", displayHandle(msg.From)))
	b.audit.Record(ctx, fmt.Sprintf("denied %s for user %s", command, displayHandle(msg.From)))
	return false
}

// normalizeHandle brings a handle to its canonical form: trimmed,
// @-prefixed and lower-cased. Case folding is plain ToLower, handles are
// expected to be ASCII telegram usernames.
func normalizeHandle(handle string) string {
	h := strings.TrimSpace(handle)
	if h == "" || h == "@" {
		return ""
	}
	if !strings.HasPrefix(h, "@") {
		h = "@" + h
	}
	return strings.ToLower(h)
}

// displayHandle renders a handle for user-facing messages, "unknown" for
// senders without a username
func displayHandle(handle string) string {
	if n := normalizeHandle(handle); n != "" {
		return n
	}
	return "unknown"
}
