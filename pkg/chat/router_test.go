package chat

import (
	"context"
	"errors"
	"testing"
)

// recordingSender captures outbound sends; failAll makes every send error.
type recordingSender struct {
	sent    []string
	failAll bool
}

func (s *recordingSender) Send(_ context.Context, text string) error {
	if s.failAll {
		return errors.New("network down")
	}
	s.sent = append(s.sent, text)
	return nil
}

func TestIsFarewell(t *testing.T) {
	matches := []string{"bye", "Goodbye!", "say bye now", "byebye program", "GOODBYE"}
	for _, text := range matches {
		if !IsFarewell(text) {
			t.Errorf("IsFarewell(%q) = false, want true", text)
		}
	}

	nonMatches := []string{"ping", "hello", "goodb", "by"}
	for _, text := range nonMatches {
		if IsFarewell(text) {
			t.Errorf("IsFarewell(%q) = true, want false", text)
		}
	}
}

func TestRouterDefaultReply(t *testing.T) {
	sender := &recordingSender{}
	r := NewRouter(sender, nil, nil)

	done, err := r.HandleMessage(context.Background(), Message{From: OriginUser, Text: "ping", Timestamp: 1})
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if done {
		t.Error("done = true for non-terminating message")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("got %d sends, want 1", len(sender.sent))
	}
	if sender.sent[0] != "Received: ping" {
		t.Errorf("reply = %q, want %q", sender.sent[0], "Received: ping")
	}
}

func TestRouterFarewell(t *testing.T) {
	for _, text := range []string{"bye", "Goodbye!", "say bye now", "byebye program"} {
		t.Run(text, func(t *testing.T) {
			sender := &recordingSender{}
			r := NewRouter(sender, nil, nil)

			done, err := r.HandleMessage(context.Background(), Message{From: OriginUser, Text: text, Timestamp: 1})
			if err != nil {
				t.Fatalf("HandleMessage: %v", err)
			}
			if !done {
				t.Error("done = false, want true")
			}
			if len(sender.sent) != 1 || sender.sent[0] != Farewell {
				t.Errorf("sent = %v, want exactly [%q]", sender.sent, Farewell)
			}
		})
	}
}

func TestRouterFarewellSendFailureStillTerminates(t *testing.T) {
	sender := &recordingSender{failAll: true}
	r := NewRouter(sender, nil, nil)

	done, err := r.HandleMessage(context.Background(), Message{From: OriginUser, Text: "bye", Timestamp: 1})
	if !done {
		t.Error("done = false, want true even when the farewell send fails")
	}
	if err == nil {
		t.Error("expected send error to be reported")
	}
}

func TestRouterHandleEvent(t *testing.T) {
	t.Run("user message dispatched", func(t *testing.T) {
		sender := &recordingSender{}
		r := NewRouter(sender, nil, nil)

		ev := Event{Kind: KindMessage, Message: Message{From: OriginUser, Text: "hi", Timestamp: 2}}
		if _, err := r.HandleEvent(context.Background(), ev); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}
		if len(sender.sent) != 1 {
			t.Errorf("got %d sends, want 1", len(sender.sent))
		}
	})

	t.Run("agent-origin message ignored", func(t *testing.T) {
		sender := &recordingSender{}
		r := NewRouter(sender, nil, nil)

		ev := Event{Kind: KindMessage, Message: Message{From: OriginAgent, Text: "echo", Timestamp: 3}}
		done, err := r.HandleEvent(context.Background(), ev)
		if err != nil || done {
			t.Fatalf("HandleEvent = (%v, %v), want (false, nil)", done, err)
		}
		if len(sender.sent) != 0 {
			t.Errorf("got %d sends, want 0", len(sender.sent))
		}
	})

	t.Run("connection ack logs only", func(t *testing.T) {
		sender := &recordingSender{}
		r := NewRouter(sender, nil, nil)

		done, err := r.HandleEvent(context.Background(), Event{Kind: KindConnected, Name: "Go Agent"})
		if err != nil || done {
			t.Fatalf("HandleEvent = (%v, %v), want (false, nil)", done, err)
		}
		if len(sender.sent) != 0 {
			t.Errorf("got %d sends, want 0", len(sender.sent))
		}
	})

	t.Run("unknown event ignored", func(t *testing.T) {
		sender := &recordingSender{}
		r := NewRouter(sender, nil, nil)

		done, err := r.HandleEvent(context.Background(), Event{Kind: KindUnknown})
		if err != nil || done {
			t.Fatalf("HandleEvent = (%v, %v), want (false, nil)", done, err)
		}
	})
}

// customResponder proves the reply policy is swappable without touching
// dispatch.
type customResponder struct{}

func (customResponder) Reply(_ context.Context, text string) (string, error) {
	return "echo<" + text + ">", nil
}

func TestRouterCustomResponder(t *testing.T) {
	sender := &recordingSender{}
	r := NewRouter(sender, customResponder{}, nil)

	if _, err := r.HandleMessage(context.Background(), Message{From: OriginUser, Text: "x", Timestamp: 1}); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "echo<x>" {
		t.Errorf("sent = %v, want [echo<x>]", sender.sent)
	}
}

func TestRouterSendDisconnectSwallowsFailure(t *testing.T) {
	sender := &recordingSender{failAll: true}
	r := NewRouter(sender, nil, nil)

	// Must not panic or surface the error.
	r.SendDisconnect(context.Background())
}

func TestRouterDisplayHook(t *testing.T) {
	sender := &recordingSender{}
	r := NewRouter(sender, nil, nil)

	var shown [][2]string
	r.Display = func(origin, text string) {
		shown = append(shown, [2]string{origin, text})
	}

	if _, err := r.HandleMessage(context.Background(), Message{From: OriginUser, Text: "ping", Timestamp: 1}); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	if len(shown) != 2 {
		t.Fatalf("got %d display calls, want 2", len(shown))
	}
	if shown[0] != [2]string{OriginUser, "ping"} {
		t.Errorf("shown[0] = %v", shown[0])
	}
	if shown[1] != [2]string{OriginAgent, "Received: ping"} {
		t.Errorf("shown[1] = %v", shown[1])
	}
}
