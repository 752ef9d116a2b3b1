package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jg-phare/logan-bridge/pkg/stream"
)

// ErrStreamClosed means the event stream ended without the session
// terminating. Reconnecting, if wanted, is the caller's call.
var ErrStreamClosed = errors.New("event stream closed")

// RunStream opens the event stream and dispatches decoded events until the
// router terminates the session, the connection drops, or ctx is cancelled.
// On interrupt it sends the best-effort disconnect notice and returns nil.
// The agent name travels in the connect query string, so there is no
// separate registration step in this mode.
func (s *Session) RunStream(ctx context.Context) error {
	body, err := s.client.OpenEvents(ctx, s.cfg.Name)
	if err != nil {
		return fmt.Errorf("connect events: %w", err)
	}
	defer body.Close()

	s.log.Info("stream connected, listening for messages")
	s.greet(ctx, "SSE")

	for ev := range stream.Events(ctx, body) {
		done, err := s.router.HandleEvent(ctx, ev)
		if err != nil {
			s.log.Error("handle event", "error", err)
		}
		if done {
			return nil
		}
	}

	if ctx.Err() != nil {
		s.disconnect()
		return nil
	}
	return ErrStreamClosed
}
