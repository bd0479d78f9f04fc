package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/tg-relay/pkg/domain"
)

func TestNormalizeHandle(t *testing.T) {
	tbl := []struct {
		in  string
		out string
	}{
		{"@Alice", "@alice"},
		{"alice", "@alice"},
		{"  Bob  ", "@bob"},
		{"@BOB", "@bob"},
		{"", ""},
		{"   ", ""},
		{"@", ""},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.out, normalizeHandle(tt.in), "input %q", tt.in)
	}
}

func TestIsAdmin(t *testing.T) {
	tb := newTestBot(t, &domain.Settings{Admins: []string{"@Alice", "bob"}}, "@Root")

	tbl := []struct {
		name   string
		handle string
		admin  bool
	}{
		{"listed admin", "@alice", true},
		{"listed admin different casing", "@ALICE", true},
		{"listed admin without sigil", "alice", true},
		{"admin stored without sigil", "@bob", true},
		{"super admin", "@root", true},
		{"super admin different casing", "ROOT", true},
		{"unknown", "@eve", false},
		{"empty", "", false},
		{"spaces only", "   ", false},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.admin, tb.bot.isAdmin(tt.handle, tb.settings))
		})
	}
}

func TestIsAdmin_SuperAdminWithEmptyAdminList(t *testing.T) {
	tb := newTestBot(t, &domain.Settings{Admins: []string{}}, "@root")

	assert.True(t, tb.bot.isAdmin("@root", tb.settings))
	assert.False(t, tb.bot.isAdmin("@alice", tb.settings))
}

func TestRequireAdmin_Denial(t *testing.T) {
	tb := newTestBot(t, adminSettings("@alice"))

	tb.send("@eve", "/set_monitor_channel")

	reply := tb.lastReply(t)
	assert.Contains(t, reply, "don't have permission")
	assert.Contains(t, reply, "@eve", "denial names the actor for their own diagnosis")

	// denial is audited, nothing is pending
	records := tb.audit.RecordCalls()
	assert.Len(t, records, 1)
	assert.Contains(t, records[0].Event, "denied /set_monitor_channel for user @eve")

	tb.send("@eve", "-100111")
	assert.NotContains(t, tb.lastReply(t), "monitoring channel", "no continuation was registered")
	assert.Empty(t, tb.settings.MonitorChannel)
}

func TestRequireAdmin_MutatingCommandsGated(t *testing.T) {
	tb := newTestBot(t, adminSettings("@alice"))

	gated := []string{"/status", "/set_monitor_channel", "/set_keyword_initial",
		"/set_keyword_contain", "/set_sending_channel", "/add_admin", "/rm_admin"}

	for _, cmd := range gated {
		tb.send("@eve", cmd)
		assert.Contains(t, tb.lastReply(t), "don't have permission", "command %s", cmd)
	}

	// open commands answer anyone
	tb.send("@eve", "/help")
	assert.Contains(t, tb.lastReply(t), "commands:")
	tb.send("", "/get_group_id")
	assert.Contains(t, tb.lastReply(t), "chat's id")
}
