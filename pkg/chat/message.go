// Package chat defines the message model and the dispatch/termination
// protocol shared by the polling and streaming delivery modes. Both modes
// feed decoded events into the same Router, so the agent's behavior does not
// depend on which transport delivered a message.
package chat

// Message origin markers as produced by LOGAN.
const (
	OriginUser  = "user"
	OriginAgent = "agent"
)

// Message is one chat message from the LOGAN control API. Timestamp is
// milliseconds since epoch and non-decreasing within a connection. Messages
// are read-only once decoded.
type Message struct {
	From      string `json:"from"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
