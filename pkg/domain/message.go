package domain

import "strconv"

// Message is an inbound chat event, either a command/reply in a
// conversation or a post in a channel
type Message struct {
	MessageID int
	ChatID    int64  // conversation or channel the message arrived in
	From      string // sender username, empty for channel posts
	Text      string // empty for posts without textual content
}

// ChatIDString renders the chat id the way channel identifiers are
// stored in settings, e.g. "-1001234567890"
func (m Message) ChatIDString() string {
	return strconv.FormatInt(m.ChatID, 10)
}
