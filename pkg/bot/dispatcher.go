package bot

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/tg-relay/pkg/config"
	"github.com/umputun/tg-relay/pkg/domain"
	"github.com/umputun/tg-relay/pkg/rules"
)

// OnChannelPost evaluates a post from any channel. Posts outside the
// monitored channel are ignored without a trace; matched posts are
// delivered to every destination, each delivery independent of the
// others' failures.
func (b *Bot) OnChannelPost(ctx context.Context, post domain.Message) {
	s, err := b.store.Get(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to load settings for post %d: %v", post.MessageID, err)
		return
	}

	if s.MonitorChannel == "" || post.ChatIDString() != s.MonitorChannel {
		return
	}

	decision := rules.Decide(post.Text, s)
	if !decision.Forward {
		lgr.Printf("[DEBUG] post %d from %s has no keyword match, skipped", post.MessageID, post.ChatIDString())
		return
	}

	if len(s.SendingChannels) == 0 {
		lgr.Printf("[WARN] post %d matched (%s) but no sending channels configured", post.MessageID, decision.Reason())
		return
	}

	var g errgroup.Group
	for _, dest := range s.SendingChannels {
		g.Go(func() error {
			if err := b.deliver(ctx, dest, post); err != nil {
				// one bad destination must not block the others
				lgr.Printf("[WARN] failed to deliver post %d to %s: %v", post.MessageID, dest, err)
			}
			return nil
		})
	}
	_ = g.Wait() // deliveries never report errors up

	b.audit.Record(ctx, fmt.Sprintf("relayed post %d from %s to %v (%s)",
		post.MessageID, post.ChatIDString(), s.SendingChannels, decision.Reason()))
}

// deliver sends one post to one destination. Copy mode sends the text as
// a new message; posts without text can only be forwarded natively.
func (b *Bot) deliver(ctx context.Context, dest string, post domain.Message) error {
	if b.relayMode == config.RelayModeForward || post.Text == "" {
		return b.transport.ForwardMessage(ctx, dest, post.ChatIDString(), post.MessageID)
	}
	return b.transport.SendMessage(ctx, dest, post.Text)
}
