package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tg-relay/pkg/config"
	"github.com/umputun/tg-relay/pkg/domain"
)

func (tb *testBot) post(chatID int64, messageID int, text string) {
	tb.bot.OnChannelPost(context.Background(), domain.Message{MessageID: messageID, ChatID: chatID, Text: text})
}

func TestDispatcher_EndToEnd(t *testing.T) {
	// monitored -100111, no keywords, one destination: every post relayed
	tb := newTestBot(t, adminSettings("@alice"))
	tb.settings.MonitorChannel = "-100111"
	tb.settings.SendingChannels = []string{"-100222"}

	tb.post(-100111, 7, "anything")

	sends := tb.transport.SendMessageCalls()
	require.Len(t, sends, 1)
	assert.Equal(t, "-100222", sends[0].ChannelID)
	assert.Equal(t, "anything", sends[0].Text)

	records := tb.audit.RecordCalls()
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Event, "relayed post 7 from -100111 to [-100222] (default)")
}

func TestDispatcher_IgnoresOtherChannels(t *testing.T) {
	tb := newTestBot(t, adminSettings("@alice"))
	tb.settings.MonitorChannel = "-100111"
	tb.settings.SendingChannels = []string{"-100222"}

	tb.post(-100999, 1, "anything")

	assert.Empty(t, tb.transport.SendMessageCalls())
	assert.Empty(t, tb.audit.RecordCalls(), "foreign posts leave no trace")
}

func TestDispatcher_NoMonitorConfigured(t *testing.T) {
	tb := newTestBot(t, adminSettings("@alice"))
	tb.settings.SendingChannels = []string{"-100222"}

	tb.post(-100111, 1, "anything")

	assert.Empty(t, tb.transport.SendMessageCalls())
}

func TestDispatcher_KeywordFiltering(t *testing.T) {
	tb := newTestBot(t, adminSettings("@alice"))
	tb.settings.MonitorChannel = "-100111"
	tb.settings.KeywordInitial = []string{"alpha"}
	tb.settings.KeywordContain = []string{"ca"}
	tb.settings.SendingChannels = []string{"-100222"}

	tb.post(-100111, 1, "Alpha wins") // prefix match
	tb.post(-100111, 2, "breaking CA news") // substring match
	tb.post(-100111, 3, "nothing relevant") // no match
	tb.post(-100111, 4, "") // no text, rules configured

	sends := tb.transport.SendMessageCalls()
	require.Len(t, sends, 2)
	assert.Equal(t, "Alpha wins", sends[0].Text)
	assert.Equal(t, "breaking CA news", sends[1].Text)

	records := tb.audit.RecordCalls()
	require.Len(t, records, 2)
	assert.Contains(t, records[0].Event, "keyword: alpha")
	assert.Contains(t, records[1].Event, "keyword: ca")
}

func TestDispatcher_PerDestinationFailureIsolated(t *testing.T) {
	tb := newTestBot(t, adminSettings("@alice"))
	tb.settings.MonitorChannel = "-100111"
	tb.settings.SendingChannels = []string{"-1", "-2", "-3"}
	tb.transport.SendMessageFunc = func(ctx context.Context, channelID, text string) error {
		if channelID == "-2" {
			return errors.New("bot was kicked")
		}
		return nil
	}

	tb.post(-100111, 1, "anything")

	// all three attempted despite the middle one failing
	assert.Len(t, tb.transport.SendMessageCalls(), 3)
	assert.Len(t, tb.audit.RecordCalls(), 1, "summary still recorded")
}

func TestDispatcher_ForwardMode(t *testing.T) {
	tb := newTestBot(t, adminSettings("@alice"))
	tb.bot.relayMode = config.RelayModeForward
	tb.settings.MonitorChannel = "-100111"
	tb.settings.SendingChannels = []string{"-100222"}

	tb.post(-100111, 9, "anything")

	assert.Empty(t, tb.transport.SendMessageCalls())
	forwards := tb.transport.ForwardMessageCalls()
	require.Len(t, forwards, 1)
	assert.Equal(t, "-100222", forwards[0].DestChannelID)
	assert.Equal(t, "-100111", forwards[0].SrcChannelID)
	assert.Equal(t, 9, forwards[0].MessageID)
}

func TestDispatcher_TextlessPostForwardedInCopyMode(t *testing.T) {
	// a photo-only post passes default-allow but has no text to copy
	tb := newTestBot(t, adminSettings("@alice"))
	tb.settings.MonitorChannel = "-100111"
	tb.settings.SendingChannels = []string{"-100222"}

	tb.post(-100111, 5, "")

	assert.Empty(t, tb.transport.SendMessageCalls())
	assert.Len(t, tb.transport.ForwardMessageCalls(), 1)
}

func TestDispatcher_NoDestinationsConfigured(t *testing.T) {
	tb := newTestBot(t, adminSettings("@alice"))
	tb.settings.MonitorChannel = "-100111"

	tb.post(-100111, 1, "anything")

	assert.Empty(t, tb.transport.SendMessageCalls())
	assert.Empty(t, tb.audit.RecordCalls())
}
