package domain

import "fmt"

// cardinality limits for settings lists, enforced before every persisted write
const (
	MaxKeywords        = 5 // per keyword list, initial and contain counted separately
	MaxSendingChannels = 3
)

// Settings is the single runtime configuration document for the relay.
// It is stored as one JSON blob and mutated only through validated
// command handlers, full read-then-full-write (last write wins).
type Settings struct {
	MonitorChannel  string   `json:"monitor_channel"`
	KeywordInitial  []string `json:"keyword_initial"`
	KeywordContain  []string `json:"keyword_contain"`
	SendingChannels []string `json:"sending_channels"`
	Admins          []string `json:"admins"`
}

// NewSettings returns a settings document with defaults, admins seeded
// from the immutable super-admin set
func NewSettings(superAdmins []string) *Settings {
	admins := make([]string, len(superAdmins))
	copy(admins, superAdmins)
	return &Settings{
		KeywordInitial:  []string{},
		KeywordContain:  []string{},
		SendingChannels: []string{},
		Admins:          admins,
	}
}

// Validate checks the cardinality invariants of all list fields
func (s *Settings) Validate() error {
	if len(s.KeywordInitial) > MaxKeywords {
		return fmt.Errorf("keyword_initial has %d entries, max %d", len(s.KeywordInitial), MaxKeywords)
	}
	if len(s.KeywordContain) > MaxKeywords {
		return fmt.Errorf("keyword_contain has %d entries, max %d", len(s.KeywordContain), MaxKeywords)
	}
	if len(s.SendingChannels) > MaxSendingChannels {
		return fmt.Errorf("sending_channels has %d entries, max %d", len(s.SendingChannels), MaxSendingChannels)
	}
	return nil
}

// HasKeywords reports whether any keyword rule is configured. With no
// rules at all every post from the monitored channel is relayed.
func (s *Settings) HasKeywords() bool {
	return len(s.KeywordInitial) > 0 || len(s.KeywordContain) > 0
}
