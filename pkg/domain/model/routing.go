package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// NoValueStreams is the display string used when an issue carries no
// impacted value-stream labels.
const NoValueStreams = "No Impacted Value-Streams"

// ScorecardTopic pairs a saved tracker filter with a display name. The
// topic list is static configuration, ordered, and read-only after start.
type ScorecardTopic struct {
	FilterID string `toml:"filter_id"`
	Name     string `toml:"name"`
}

// ChannelMap routes value-stream labels to chat channels. Lookups are
// total: an unmapped label falls back to the primary channel so a message
// is never dropped for want of a mapping.
type ChannelMap struct {
	// Primary is the default destination channel, also used for agenda
	// publishing and as the fallback for unmapped value-streams.
	Primary string `toml:"primary_channel"`

	// Scorecard is the destination channel for scorecard updates.
	Scorecard string `toml:"scorecard_channel"`

	// Channels maps a value-stream label to its channel ID.
	Channels map[string]string `toml:"channels"`

	// Topics is the ordered scorecard topic list.
	Topics []ScorecardTopic `toml:"scorecard_topics"`
}

// Route returns the channel for a value-stream label, falling back to the
// primary channel when the label is unmapped. Each label routes
// independently of any sibling labels on the same issue.
func (m *ChannelMap) Route(label string) string {
	if ch, ok := m.Channels[label]; ok {
		return ch
	}
	return m.Primary
}

// Validate checks that the map can route every lookup to some channel
func (m *ChannelMap) Validate() error {
	if m.Primary == "" {
		return goerr.New("channel map has no primary channel")
	}
	if m.Scorecard == "" {
		m.Scorecard = m.Primary
	}
	for label, ch := range m.Channels {
		if ch == "" {
			return goerr.New("channel map entry has empty channel ID", goerr.V("label", label))
		}
	}
	for _, topic := range m.Topics {
		if topic.FilterID == "" || topic.Name == "" {
			return goerr.New("scorecard topic needs both filter_id and name", goerr.V("topic", topic))
		}
	}
	return nil
}
