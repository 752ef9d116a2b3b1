package chat

import "testing"

func TestDecodeEvent(t *testing.T) {
	t.Run("user message", func(t *testing.T) {
		ev, err := DecodeEvent([]byte(`{"from":"user","text":"hi","timestamp":5}`))
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if ev.Kind != KindMessage {
			t.Fatalf("Kind = %v, want KindMessage", ev.Kind)
		}
		want := Message{From: "user", Text: "hi", Timestamp: 5}
		if ev.Message != want {
			t.Errorf("Message = %+v, want %+v", ev.Message, want)
		}
	})

	t.Run("agent message keeps origin", func(t *testing.T) {
		ev, err := DecodeEvent([]byte(`{"from":"agent","text":"ok","timestamp":9}`))
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if ev.Kind != KindMessage {
			t.Fatalf("Kind = %v, want KindMessage", ev.Kind)
		}
		if ev.Message.From != OriginAgent {
			t.Errorf("From = %q, want %q", ev.Message.From, OriginAgent)
		}
	})

	t.Run("connection acknowledgement", func(t *testing.T) {
		ev, err := DecodeEvent([]byte(`{"name":"Go Agent"}`))
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if ev.Kind != KindConnected {
			t.Fatalf("Kind = %v, want KindConnected", ev.Kind)
		}
		if ev.Name != "Go Agent" {
			t.Errorf("Name = %q, want Go Agent", ev.Name)
		}
	})

	t.Run("from field wins over name", func(t *testing.T) {
		ev, err := DecodeEvent([]byte(`{"from":"user","text":"x","timestamp":1,"name":"n"}`))
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if ev.Kind != KindMessage {
			t.Errorf("Kind = %v, want KindMessage", ev.Kind)
		}
	})

	t.Run("other objects are unknown", func(t *testing.T) {
		ev, err := DecodeEvent([]byte(`{"ping":true}`))
		if err != nil {
			t.Fatalf("DecodeEvent: %v", err)
		}
		if ev.Kind != KindUnknown {
			t.Errorf("Kind = %v, want KindUnknown", ev.Kind)
		}
	})

	t.Run("invalid JSON errors", func(t *testing.T) {
		if _, err := DecodeEvent([]byte(`{not json}`)); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})

	t.Run("non-object JSON errors", func(t *testing.T) {
		if _, err := DecodeEvent([]byte(`42`)); err == nil {
			t.Error("expected error for non-object payload")
		}
	})
}
