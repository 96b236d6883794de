package main

import (
	"context"
	"strings"
	"testing"
)

func TestSeatSystemPrompt(t *testing.T) {
	view := seatView{
		Seat:          4,
		TotalPlayers:  5,
		ActiveCount:   3,
		CheckInterval: 3,
	}

	prompt := seatSystemPrompt(view)
	if !strings.Contains(prompt, "You are Player 4.") {
		t.Fatalf("prompt missing seat header:\n%s", prompt)
	}
	if !strings.Contains(prompt, "3 active players") {
		t.Fatalf("prompt missing active count:\n%s", prompt)
	}
	if strings.Contains(prompt, "PRIVATE HINTS") {
		t.Fatal("prompt has a hint section with no hints")
	}

	view.Hints = []string{"Your provider is 'google'."}
	prompt = seatSystemPrompt(view)
	if !strings.Contains(prompt, ">>> [SYSTEM HINT]: Your provider is 'google'. <<<") {
		t.Fatalf("prompt missing hint line:\n%s", prompt)
	}
}

func TestEventLine(t *testing.T) {
	cases := []struct {
		event transcriptEvent
		want  string
	}{
		{transcriptEvent{Author: 3, Kind: kindMessage, Payload: "hi"}, "[Player 3]: hi"},
		{transcriptEvent{Author: gameMaster, Kind: kindSystem, Payload: "round over"}, "[GAME MASTER]: round over"},
		{transcriptEvent{Author: gameMaster, Audience: 2, Kind: kindHint, Payload: "a hint"}, "(privately to Player 2) [GAME MASTER]: a hint"},
	}

	for _, c := range cases {
		if got := eventLine(c.event); got != c.want {
			t.Fatalf("eventLine(%+v) = %q, want %q", c.event, got, c.want)
		}
	}
}

func TestScriptedResponderIsDeterministic(t *testing.T) {
	req := turnRequest{
		View:         seatView{Seat: 1, TotalPlayers: 3, ActiveCount: 3, CheckInterval: 3},
		Prompt:       turnPrompt,
		ToolsAllowed: true,
	}

	a := newScriptedResponder()
	b := newScriptedResponder()

	for i := 0; i < 6; i++ {
		replyA, err := a.respond(context.Background(), req)
		if err != nil {
			t.Fatalf("respond: %v", err)
		}
		replyB, err := b.respond(context.Background(), req)
		if err != nil {
			t.Fatalf("respond: %v", err)
		}
		if replyA.message != replyB.message {
			t.Fatalf("turn %d diverged: %q vs %q", i, replyA.message, replyB.message)
		}
	}
}

func TestScriptedResponderNeverUsesToolsWhenForbidden(t *testing.T) {
	s := newScriptedResponder()

	for _, prompt := range []string{introPrompt, identityCheckPrompt} {
		reply, err := s.respond(context.Background(), turnRequest{
			View:   seatView{Seat: 2, TotalPlayers: 4},
			Prompt: prompt,
		})
		if err != nil {
			t.Fatalf("respond: %v", err)
		}
		if reply.tool != nil {
			t.Fatalf("scripted responder used a tool for prompt %q", prompt)
		}
		if reply.message == "" {
			t.Fatal("scripted responder returned an empty message")
		}
	}
}
