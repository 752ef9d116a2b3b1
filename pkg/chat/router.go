package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Farewell is the fixed message sent when the termination rule matches.
const Farewell = "Goodbye! Disconnecting."

// DisconnectNotice is the best-effort message sent when the session is
// interrupted from outside.
const DisconnectNotice = "Agent disconnected."

// Sender delivers outbound agent messages to LOGAN.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Responder produces the reply for an inbound user message. It is the single
// substitution point for real agent logic; replacing it does not touch the
// framing or dispatch path.
type Responder interface {
	Reply(ctx context.Context, text string) (string, error)
}

// EchoResponder is the placeholder default: it acknowledges each message by
// echoing it back.
type EchoResponder struct{}

// Reply returns "Received: " followed by the inbound text.
func (EchoResponder) Reply(_ context.Context, text string) (string, error) {
	return "Received: " + text, nil
}

// Router classifies decoded events, applies the termination rule, and drives
// outbound sends. Both delivery modes share one Router.
type Router struct {
	sender    Sender
	responder Responder
	logger    *slog.Logger

	// Display, if set, is called for each user message shown and each
	// outbound send that succeeded. It exists for console output only.
	Display func(origin, text string)
}

// NewRouter creates a Router. A nil responder defaults to EchoResponder; a
// nil logger defaults to slog.Default().
func NewRouter(sender Sender, responder Responder, logger *slog.Logger) *Router {
	if responder == nil {
		responder = EchoResponder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		sender:    sender,
		responder: responder,
		logger:    logger,
	}
}

// HandleEvent routes one decoded stream event. Connection acknowledgements
// are logged; user messages go through HandleMessage; everything else is
// ignored. done is true once the termination rule has fired.
func (r *Router) HandleEvent(ctx context.Context, ev Event) (done bool, err error) {
	switch ev.Kind {
	case KindConnected:
		r.logger.Info("stream acknowledged", "name", ev.Name)
		return false, nil
	case KindMessage:
		if ev.Message.From != OriginUser {
			return false, nil
		}
		return r.HandleMessage(ctx, ev.Message)
	default:
		return false, nil
	}
}

// HandleMessage processes one inbound user message: a farewell match sends
// the fixed goodbye and terminates the session; anything else gets the
// responder's reply. A failed send is reported but does not change the
// termination decision.
func (r *Router) HandleMessage(ctx context.Context, msg Message) (done bool, err error) {
	if r.Display != nil {
		r.Display(OriginUser, msg.Text)
	}

	if IsFarewell(msg.Text) {
		return true, r.Send(ctx, Farewell)
	}

	reply, err := r.responder.Reply(ctx, msg.Text)
	if err != nil {
		return false, fmt.Errorf("responder: %w", err)
	}
	return false, r.Send(ctx, reply)
}

// Send delivers one outbound message and reports it to the Display hook.
func (r *Router) Send(ctx context.Context, text string) error {
	if err := r.sender.Send(ctx, text); err != nil {
		r.logger.Error("send failed", "error", err)
		return err
	}
	if r.Display != nil {
		r.Display(OriginAgent, text)
	}
	return nil
}

// SendDisconnect sends the disconnect notice. The send is best-effort: a
// failure is swallowed because the session is already shutting down.
func (r *Router) SendDisconnect(ctx context.Context) {
	if err := r.sender.Send(ctx, DisconnectNotice); err != nil {
		r.logger.Debug("disconnect notice failed", "error", err)
		return
	}
	if r.Display != nil {
		r.Display(OriginAgent, DisconnectNotice)
	}
}

// IsFarewell reports whether text triggers the termination protocol. The
// match is a case-insensitive substring check, so "Goodbye!", "say bye now"
// and even "byebye" all terminate.
func IsFarewell(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "goodbye") || strings.Contains(lower, "bye")
}
