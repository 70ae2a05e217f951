package game

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestEncodeDecodeEvent(t *testing.T) {
	data, err := EncodeEvent(EventRoomMessage, &RoomMessage{From: "Yunsol", Text: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "event", ev.Name, EventRoomMessage)

	var msg RoomMessage
	if err := json.Unmarshal(ev.Data, &msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "from", msg.From, "Yunsol")
	testutil.AssertEqual(t, "text", msg.Text, "hello")
}

func TestDecodeEventInvalid(t *testing.T) {
	if _, err := DecodeEvent([]byte("not json")); err == nil {
		t.Error("expected error for invalid envelope")
	}
}

func TestBehaviorUnmarshalText(t *testing.T) {
	tests := map[string]struct {
		text   string
		exp    Behavior
		expErr bool
	}{
		"wander":     {text: "wander", exp: BehaviorWander},
		"guard":      {text: "guard", exp: BehaviorGuard},
		"aggressive": {text: "aggressive", exp: BehaviorAggressive},
		"passive":    {text: "passive", exp: BehaviorPassive},
		"unknown":    {text: "berserk", expErr: true},
		"empty":      {text: "", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var b Behavior
			err := b.UnmarshalText([]byte(tt.text))
			if tt.expErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "behavior", b, tt.exp)
		})
	}
}
