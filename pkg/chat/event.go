package chat

import "encoding/json"

// EventKind identifies the shape of a decoded stream event.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindMessage           // Message-shaped object (has a "from" field)
	KindConnected         // connection acknowledgement ({"name": ...})
)

// Event is the decoded form of one streaming frame payload. The kind is
// resolved once here, at decode time; consumers never re-probe raw JSON.
type Event struct {
	Kind    EventKind
	Message Message // valid when Kind == KindMessage
	Name    string  // valid when Kind == KindConnected
}

// DecodeEvent classifies a raw frame payload. An object carrying a "from"
// field is a message; an object carrying only a "name" is the connection
// acknowledgement LOGAN sends when the stream opens; any other object is
// KindUnknown. Invalid JSON returns an error so callers can drop the frame.
func DecodeEvent(data []byte) (Event, error) {
	var probe struct {
		From      *string `json:"from"`
		Text      string  `json:"text"`
		Timestamp int64   `json:"timestamp"`
		Name      *string `json:"name"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Event{}, err
	}

	switch {
	case probe.From != nil:
		return Event{
			Kind: KindMessage,
			Message: Message{
				From:      *probe.From,
				Text:      probe.Text,
				Timestamp: probe.Timestamp,
			},
		}, nil
	case probe.Name != nil:
		return Event{Kind: KindConnected, Name: *probe.Name}, nil
	default:
		return Event{Kind: KindUnknown}, nil
	}
}
